package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockExpenseRepository is an in-memory domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[string]*domain.Expense
	// ListErr, when set, is returned by ListByOwner
	ListErr error
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[string]*domain.Expense),
	}
}

// Create stores the expense, assigning an ID when it has none
func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	stored := *expense
	m.Expenses[stored.ID] = &stored
	return &stored, nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Expense, error) {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	out := *e
	return &out, nil
}

// ListByOwner returns the owner's expenses newest first
func (m *MockExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	result := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.OwnerID == ownerID {
			out := *e
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, ownerID, id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	e.Title = data.Title
	e.Amount = data.Amount
	e.Category = data.Category
	e.Date = data.Date
	e.UpdatedAt = time.Now()

	out := *e
	return &out, nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// AddExpense seeds the repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	m.Expenses[expense.ID] = expense
}

// MockMonthlyBudgetRepository is an in-memory domain.MonthlyBudgetRepository
// that enforces one record per owner and month like the database does
type MockMonthlyBudgetRepository struct {
	Budgets map[string]*domain.MonthlyBudget
	ListErr error
}

func NewMockMonthlyBudgetRepository() *MockMonthlyBudgetRepository {
	return &MockMonthlyBudgetRepository{
		Budgets: make(map[string]*domain.MonthlyBudget),
	}
}

func (m *MockMonthlyBudgetRepository) Upsert(ctx context.Context, budget *domain.MonthlyBudget) (*domain.MonthlyBudget, error) {
	now := time.Now()
	for _, existing := range m.Budgets {
		if existing.OwnerID == budget.OwnerID && existing.Key() == budget.Key() {
			existing.Income = budget.Income
			existing.SavingsGoal = budget.SavingsGoal
			existing.UpdatedAt = now
			out := *existing
			return &out, nil
		}
	}

	stored := *budget
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Budgets[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (m *MockMonthlyBudgetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.MonthlyBudget, error) {
	b, ok := m.Budgets[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrMonthlyBudgetNotFound
	}
	out := *b
	return &out, nil
}

// ListByOwner returns the owner's budgets in no particular order
func (m *MockMonthlyBudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MonthlyBudget, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	result := make([]*domain.MonthlyBudget, 0)
	for _, b := range m.Budgets {
		if b.OwnerID == ownerID {
			out := *b
			result = append(result, &out)
		}
	}
	return result, nil
}

func (m *MockMonthlyBudgetRepository) Delete(ctx context.Context, ownerID, id string) error {
	b, ok := m.Budgets[id]
	if !ok || b.OwnerID != ownerID {
		return domain.ErrMonthlyBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget seeds the repository (helper for tests)
func (m *MockMonthlyBudgetRepository) AddBudget(budget *domain.MonthlyBudget) {
	m.Budgets[budget.ID] = budget
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	UserID string
	Event  websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(userID string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{UserID: userID, Event: event})
}

// Events returns a copy of everything published so far
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
