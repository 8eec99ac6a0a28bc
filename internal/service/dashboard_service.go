package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DashboardService loads a consistent snapshot of a user's records and runs
// the aggregation engine over it
type DashboardService struct {
	expenseRepo domain.ExpenseRepository
	budgetRepo  domain.MonthlyBudgetRepository
	datePolicy  engine.DatePolicy
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.MonthlyBudgetRepository,
	datePolicy engine.DatePolicy,
) *DashboardService {
	return &DashboardService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		datePolicy:  datePolicy,
		now:         time.Now,
	}
}

// SetClock replaces the clock that anchors trailing windows
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// Now reports the service clock, e.g. to default the selected month
func (s *DashboardService) Now() time.Time {
	return s.now()
}

// GetFilteredExpenses returns the expenses matching the filters and their total
func (s *DashboardService) GetFilteredExpenses(ctx context.Context, ownerID string, criteria engine.Criteria) (*domain.FilteredExpenses, error) {
	view, err := s.load(ctx, ownerID, criteria, false)
	if err != nil {
		return nil, err
	}

	return &domain.FilteredExpenses{
		Expenses: view.filtered,
		Total:    engine.TotalAmount(view.filtered),
	}, nil
}

// GetGroups returns the by-day and by-category totals of the filtered expenses
func (s *DashboardService) GetGroups(ctx context.Context, ownerID string, criteria engine.Criteria) (*domain.ExpenseGroups, error) {
	view, err := s.load(ctx, ownerID, criteria, false)
	if err != nil {
		return nil, err
	}

	return &domain.ExpenseGroups{
		ByDay:      engine.DayGroups(engine.GroupByDay(view.filtered)),
		ByCategory: engine.CategoryGroups(engine.GroupByCategory(view.filtered)),
		Total:      engine.TotalAmount(view.filtered),
	}, nil
}

// GetMonthSummary resolves the month's budget and computes its overview
// from the filtered expenses
func (s *DashboardService) GetMonthSummary(ctx context.Context, ownerID string, key domain.MonthKey, criteria engine.Criteria) (*domain.MonthSummary, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	view, err := s.load(ctx, ownerID, criteria, true)
	if err != nil {
		return nil, err
	}

	overview, err := engine.MonthOverview(view.filtered, key, view.budgets)
	if err != nil {
		return nil, err
	}

	return &domain.MonthSummary{
		Budget:   engine.ResolveMonthBudget(view.budgets, key),
		Overview: overview,
	}, nil
}

// GetProjection returns the projected-savings trajectory of a month
func (s *DashboardService) GetProjection(ctx context.Context, ownerID string, key domain.MonthKey, criteria engine.Criteria) ([]domain.ProjectionPoint, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidMonth
	}

	view, err := s.load(ctx, ownerID, criteria, true)
	if err != nil {
		return nil, err
	}

	return engine.ProjectSavings(view.filtered, key, view.budgets, criteria.Window, view.now)
}

// dashboardView is one request's snapshot after filtering
type dashboardView struct {
	now      time.Time
	filtered []domain.Expense
	budgets  []domain.MonthlyBudget
}

// load reads the owner's records, fetching expenses and budgets
// concurrently when both are needed, and applies the filters
func (s *DashboardService) load(ctx context.Context, ownerID string, criteria engine.Criteria, withBudgets bool) (*dashboardView, error) {
	criteria.DatePolicy = s.datePolicy
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	var (
		expenses []*domain.Expense
		budgets  []*domain.MonthlyBudget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.ListByOwner(gctx, ownerID)
		return err
	})
	if withBudgets {
		g.Go(func() error {
			var err error
			budgets, err = s.budgetRepo.ListByOwner(gctx, ownerID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		snapshot = append(snapshot, *e)
	}

	now := s.now()
	normalized, substituted, err := engine.NormalizeDates(snapshot, now, s.datePolicy)
	if err != nil {
		return nil, err
	}
	if substituted > 0 {
		log.Warn().
			Str("owner_id", ownerID).
			Int("substituted", substituted).
			Msg("Expenses without a usable date were treated as today")
	}

	filtered, err := engine.FilterExpenses(normalized, criteria, now)
	if err != nil {
		return nil, err
	}

	return &dashboardView{
		now:      now,
		filtered: filtered,
		budgets:  derefBudgets(budgets),
	}, nil
}
