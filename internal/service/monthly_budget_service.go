package service

import (
	"context"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/dafibh/fortuna/tracker-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MonthlyBudgetService manages the per-month income and savings goal records
type MonthlyBudgetService struct {
	budgetRepo     domain.MonthlyBudgetRepository
	eventPublisher websocket.EventPublisher
}

// NewMonthlyBudgetService creates a new MonthlyBudgetService
func NewMonthlyBudgetService(budgetRepo domain.MonthlyBudgetRepository) *MonthlyBudgetService {
	return &MonthlyBudgetService{budgetRepo: budgetRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *MonthlyBudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *MonthlyBudgetService) publishEvent(userID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// MonthlyBudgetInput sets income and goal for one month
type MonthlyBudgetInput struct {
	Month       domain.MonthKey
	Income      decimal.Decimal
	SavingsGoal decimal.Decimal
}

// SaveMonthlyBudget creates the month's record or overwrites the existing one
func (s *MonthlyBudgetService) SaveMonthlyBudget(ctx context.Context, ownerID string, input MonthlyBudgetInput) (*domain.MonthlyBudget, error) {
	budget := &domain.MonthlyBudget{
		OwnerID:     ownerID,
		Year:        input.Month.Year,
		Month:       input.Month.Month,
		Income:      input.Income.InexactFloat64(),
		SavingsGoal: input.SavingsGoal.InexactFloat64(),
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.budgetRepo.Upsert(ctx, budget)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.MonthlyBudgetSaved(saved))
	return saved, nil
}

// GetMonthlyBudgets lists the owner's records, most recent month first
func (s *MonthlyBudgetService) GetMonthlyBudgets(ctx context.Context, ownerID string) ([]domain.MonthlyBudget, error) {
	stored, err := s.budgetRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return engine.SortBudgetsNewestFirst(derefBudgets(stored)), nil
}

// DeleteMonthlyBudget removes a month's record
func (s *MonthlyBudgetService) DeleteMonthlyBudget(ctx context.Context, ownerID, id string) error {
	if err := s.budgetRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.publishEvent(ownerID, websocket.MonthlyBudgetDeleted(map[string]string{"id": id}))
	return nil
}

func derefBudgets(stored []*domain.MonthlyBudget) []domain.MonthlyBudget {
	out := make([]domain.MonthlyBudget, 0, len(stored))
	for _, b := range stored {
		out = append(out, *b)
	}
	return out
}
