package service

import (
	"context"
	"strings"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/dafibh/fortuna/tracker-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense CRUD
type ExpenseService struct {
	expenseRepo    domain.ExpenseRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ExpenseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock replaces the clock used to default missing dates
func (s *ExpenseService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ExpenseService) publishEvent(userID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// ExpenseInput is the editable part of an expense as submitted by a client.
// An empty Category means Other and an empty Date means today.
type ExpenseInput struct {
	Title    string
	Amount   decimal.Decimal
	Category string
	Date     string
}

// CreateExpense validates and stores a new expense for the owner
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID string, input ExpenseInput) (*domain.Expense, error) {
	data, err := s.resolveInput(input, time.Time{})
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:       uuid.New().String(),
		OwnerID:  ownerID,
		Title:    data.Title,
		Amount:   data.Amount,
		Category: data.Category,
		Date:     data.Date,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.ExpenseCreated(created))
	return created, nil
}

// GetExpenses lists the owner's expenses, newest first
func (s *ExpenseService) GetExpenses(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	return s.expenseRepo.ListByOwner(ctx, ownerID)
}

// UpdateExpense replaces the editable fields. An empty Date keeps the stored date.
func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerID, id string, input ExpenseInput) (*domain.Expense, error) {
	existing, err := s.expenseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	data, err := s.resolveInput(input, existing.Date)
	if err != nil {
		return nil, err
	}

	candidate := *existing
	candidate.Title = data.Title
	candidate.Amount = data.Amount
	candidate.Category = data.Category
	candidate.Date = data.Date
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(ctx, ownerID, id, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.ExpenseUpdated(updated))
	return updated, nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, id string) error {
	if err := s.expenseRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.publishEvent(ownerID, websocket.ExpenseDeleted(map[string]string{"id": id}))
	return nil
}

// resolveInput applies defaults and parses the submitted values.
// fallbackDate is used for an empty date; the zero time means today.
func (s *ExpenseService) resolveInput(input ExpenseInput, fallbackDate time.Time) (*domain.UpdateExpenseData, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	category := domain.CategoryOther
	if strings.TrimSpace(input.Category) != "" {
		c, err := domain.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	date := fallbackDate
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := engine.ParseExpenseDate(input.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	if date.IsZero() {
		date = s.now()
	}

	return &domain.UpdateExpenseData{
		Title:    strings.TrimSpace(input.Title),
		Amount:   input.Amount.InexactFloat64(),
		Category: category,
		Date:     date,
	}, nil
}
