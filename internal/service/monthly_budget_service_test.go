package service

import (
	"context"
	"testing"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyBudgetService_SaveMonthlyBudget_Upserts(t *testing.T) {
	repo := testutil.NewMockMonthlyBudgetRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewMonthlyBudgetService(repo)
	svc.SetEventPublisher(publisher)
	march := domain.MonthKey{Year: 2024, Month: 2}

	first, err := svc.SaveMonthlyBudget(context.Background(), testOwner, MonthlyBudgetInput{
		Month:       march,
		Income:      decimal.NewFromInt(1000),
		SavingsGoal: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	second, err := svc.SaveMonthlyBudget(context.Background(), testOwner, MonthlyBudgetInput{
		Month:       march,
		Income:      decimal.NewFromInt(1500),
		SavingsGoal: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1500.0, second.Income)
	assert.Len(t, repo.Budgets, 1)
	assert.Len(t, publisher.Events(), 2)
	assert.Equal(t, "monthly_budget.saved", publisher.Events()[1].Event.Type)
}

func TestMonthlyBudgetService_SaveMonthlyBudget_Invalid(t *testing.T) {
	svc := NewMonthlyBudgetService(testutil.NewMockMonthlyBudgetRepository())

	_, err := svc.SaveMonthlyBudget(context.Background(), testOwner, MonthlyBudgetInput{
		Month:  domain.MonthKey{Year: 2024, Month: 12},
		Income: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = svc.SaveMonthlyBudget(context.Background(), testOwner, MonthlyBudgetInput{
		Month:       domain.MonthKey{Year: 2024, Month: 1},
		Income:      decimal.NewFromInt(100),
		SavingsGoal: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestMonthlyBudgetService_GetMonthlyBudgets_NewestFirst(t *testing.T) {
	repo := testutil.NewMockMonthlyBudgetRepository()
	repo.AddBudget(&domain.MonthlyBudget{ID: "a", OwnerID: testOwner, Year: 2023, Month: 11})
	repo.AddBudget(&domain.MonthlyBudget{ID: "b", OwnerID: testOwner, Year: 2024, Month: 1})
	repo.AddBudget(&domain.MonthlyBudget{ID: "c", OwnerID: testOwner, Year: 2024, Month: 0})
	repo.AddBudget(&domain.MonthlyBudget{ID: "d", OwnerID: "auth0|bob", Year: 2025, Month: 0})
	svc := NewMonthlyBudgetService(repo)

	budgets, err := svc.GetMonthlyBudgets(context.Background(), testOwner)

	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, "b", budgets[0].ID)
	assert.Equal(t, "c", budgets[1].ID)
	assert.Equal(t, "a", budgets[2].ID)
}

func TestMonthlyBudgetService_DeleteMonthlyBudget(t *testing.T) {
	repo := testutil.NewMockMonthlyBudgetRepository()
	repo.AddBudget(&domain.MonthlyBudget{ID: "a", OwnerID: testOwner, Year: 2024, Month: 2})
	publisher := testutil.NewMockEventPublisher()
	svc := NewMonthlyBudgetService(repo)
	svc.SetEventPublisher(publisher)

	require.NoError(t, svc.DeleteMonthlyBudget(context.Background(), testOwner, "a"))
	assert.Empty(t, repo.Budgets)
	assert.Equal(t, "monthly_budget.deleted", publisher.Events()[0].Event.Type)

	assert.ErrorIs(t, svc.DeleteMonthlyBudget(context.Background(), testOwner, "a"), domain.ErrMonthlyBudgetNotFound)
}
