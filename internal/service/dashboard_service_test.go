package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/dafibh/fortuna/tracker-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardService(policy engine.DatePolicy) (*DashboardService, *testutil.MockExpenseRepository, *testutil.MockMonthlyBudgetRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockMonthlyBudgetRepository()

	expenseRepo.AddExpense(&domain.Expense{ID: "e-1", OwnerID: testOwner, Title: "Lunch", Amount: 100, Category: domain.CategoryFood, Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)})
	expenseRepo.AddExpense(&domain.Expense{ID: "e-2", OwnerID: testOwner, Title: "Power", Amount: 50, Category: domain.CategoryBills, Date: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)})
	expenseRepo.AddExpense(&domain.Expense{ID: "e-3", OwnerID: testOwner, Title: "Cinema", Amount: 20, Category: domain.CategoryEntertainment, Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)})
	expenseRepo.AddExpense(&domain.Expense{ID: "e-4", OwnerID: "auth0|bob", Title: "Not mine", Amount: 999, Category: domain.CategoryFood, Date: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)})
	budgetRepo.AddBudget(&domain.MonthlyBudget{ID: "b-1", OwnerID: testOwner, Year: 2024, Month: 2, Income: 1000, SavingsGoal: 200})

	svc := NewDashboardService(expenseRepo, budgetRepo, policy)
	svc.SetClock(testutil.FixedClock(fixedNow))
	return svc, expenseRepo, budgetRepo
}

func allTime() engine.Criteria {
	return engine.Criteria{Category: domain.CategoryFilterAll, Window: domain.WindowAll()}
}

func TestDashboardService_GetFilteredExpenses(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	result, err := svc.GetFilteredExpenses(context.Background(), testOwner, engine.DefaultCriteria())

	require.NoError(t, err)
	require.Len(t, result.Expenses, 2)
	assert.Equal(t, "e-2", result.Expenses[0].ID)
	assert.Equal(t, 150.0, result.Total)
}

func TestDashboardService_GetFilteredExpenses_InvalidCriteria(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	_, err := svc.GetFilteredExpenses(context.Background(), testOwner, engine.Criteria{Category: "Shopping", Window: domain.WindowAll()})
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryFilter)
}

func TestDashboardService_GetGroups(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	groups, err := svc.GetGroups(context.Background(), testOwner, allTime())

	require.NoError(t, err)
	assert.Equal(t, []domain.DerivedGroup{
		{Key: "2024-01-05", Total: 20},
		{Key: "2024-03-01", Total: 100},
		{Key: "2024-03-02", Total: 50},
	}, groups.ByDay)
	assert.Equal(t, []domain.DerivedGroup{
		{Key: "Food", Total: 100},
		{Key: "Entertainment", Total: 20},
		{Key: "Bills", Total: 50},
	}, groups.ByCategory)
	assert.Equal(t, 170.0, groups.Total)
}

func TestDashboardService_GetMonthSummary(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	summary, err := svc.GetMonthSummary(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 2}, allTime())

	require.NoError(t, err)
	assert.Equal(t, domain.Budget{Income: 1000, SavingsGoal: 200}, summary.Budget)
	assert.Equal(t, 150.0, summary.Overview.MonthExpenses)
	assert.Equal(t, 850.0, summary.Overview.ProjectedSavings)
	assert.Equal(t, 31, summary.Overview.DaysInMonth)

	missing, err := svc.GetMonthSummary(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 0}, allTime())
	require.NoError(t, err)
	assert.Equal(t, domain.Budget{}, missing.Budget)
	assert.Equal(t, 20.0, missing.Overview.MonthExpenses)
}

func TestDashboardService_GetProjection(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	points, err := svc.GetProjection(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 2}, allTime())

	require.NoError(t, err)
	require.Len(t, points, 31)
	assert.Equal(t, 700.0, points[0].RemainingSavings)
	assert.Equal(t, 650.0/30, points[1].ProjectedSavings)
}

func TestDashboardService_GetProjection_WindowedDefault(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	points, err := svc.GetProjection(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 2}, engine.DefaultCriteria())

	require.NoError(t, err)
	// A 30-day window from March 15 starts on February 15, so all of March stays
	assert.Len(t, points, 31)
}

func TestDashboardService_DatePolicy(t *testing.T) {
	fallback, expenseRepo, _ := newDashboardService(engine.DateFallbackNow)
	expenseRepo.AddExpense(&domain.Expense{ID: "e-bad", OwnerID: testOwner, Title: "Imported", Amount: 5, Category: domain.CategoryOther})

	result, err := fallback.GetFilteredExpenses(context.Background(), testOwner, engine.DefaultCriteria())
	require.NoError(t, err)
	assert.Equal(t, 155.0, result.Total)

	strict := NewDashboardService(expenseRepo, testutil.NewMockMonthlyBudgetRepository(), engine.DateStrict)
	strict.SetClock(testutil.FixedClock(fixedNow))

	_, err = strict.GetFilteredExpenses(context.Background(), testOwner, engine.DefaultCriteria())
	assert.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestDashboardService_RepositoryError(t *testing.T) {
	svc, expenseRepo, _ := newDashboardService(engine.DateFallbackNow)
	expenseRepo.ListErr = errors.New("connection reset")

	_, err := svc.GetGroups(context.Background(), testOwner, allTime())
	assert.EqualError(t, err, "connection reset")
}

func TestDashboardService_BudgetRepositoryError(t *testing.T) {
	svc, _, budgetRepo := newDashboardService(engine.DateFallbackNow)
	budgetRepo.ListErr = errors.New("connection reset")

	_, err := svc.GetMonthSummary(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 2}, allTime())
	assert.EqualError(t, err, "connection reset")

	// Views without budgets never read them
	_, err = svc.GetFilteredExpenses(context.Background(), testOwner, allTime())
	assert.NoError(t, err)
}

func TestDashboardService_InvalidMonth(t *testing.T) {
	svc, _, _ := newDashboardService(engine.DateFallbackNow)

	_, err := svc.GetProjection(context.Background(), testOwner, domain.MonthKey{Year: 2024, Month: 12}, allTime())
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}
