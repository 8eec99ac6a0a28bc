package engine

import (
	"fmt"
	"sort"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/util"
)

// ResolveMonthBudget returns the income and savings goal recorded for key.
// The first matching record wins; a month without a record resolves to the
// zero Budget.
func ResolveMonthBudget(budgets []domain.MonthlyBudget, key domain.MonthKey) domain.Budget {
	for _, b := range budgets {
		if b.Year == key.Year && b.Month == key.Month {
			return domain.Budget{Income: b.Income, SavingsGoal: b.SavingsGoal}
		}
	}
	return domain.Budget{}
}

// IndexBudgets keys budget records by month and rejects repeated months
func IndexBudgets(budgets []domain.MonthlyBudget) (map[domain.MonthKey]domain.MonthlyBudget, error) {
	index := make(map[domain.MonthKey]domain.MonthlyBudget, len(budgets))
	for _, b := range budgets {
		key := b.Key()
		if _, exists := index[key]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateMonthBudget, key)
		}
		index[key] = b
	}
	return index, nil
}

// SortBudgetsNewestFirst returns a copy ordered by month, most recent first
func SortBudgetsNewestFirst(budgets []domain.MonthlyBudget) []domain.MonthlyBudget {
	out := make([]domain.MonthlyBudget, len(budgets))
	copy(out, budgets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key().Ordinal() > out[j].Key().Ordinal()
	})
	return out
}

// ExpensesInMonth keeps the expenses dated inside the given month
func ExpensesInMonth(expenses []domain.Expense, key domain.MonthKey) []domain.Expense {
	out := make([]domain.Expense, 0)
	for _, e := range expenses {
		if e.Date.Year() == key.Year && e.Date.Month() == key.TimeMonth() {
			out = append(out, e)
		}
	}
	return out
}

// MonthOverview computes the overview card figures for a month.
// ProjectedSavings is what remains of income after the month's expenses;
// BaselineDailySavings spreads income minus goal evenly over the month.
func MonthOverview(expenses []domain.Expense, key domain.MonthKey, budgets []domain.MonthlyBudget) (domain.MonthOverview, error) {
	if !key.Valid() {
		return domain.MonthOverview{}, domain.ErrInvalidMonth
	}

	budget := ResolveMonthBudget(budgets, key)
	spent := TotalAmount(ExpensesInMonth(expenses, key))
	days := util.DaysInMonth(key.Year, key.TimeMonth())

	return domain.MonthOverview{
		Month:                key,
		Income:               budget.Income,
		SavingsGoal:          budget.SavingsGoal,
		MonthExpenses:        spent,
		ProjectedSavings:     budget.Income - spent,
		BaselineDailySavings: (budget.Income - budget.SavingsGoal) / float64(days),
		DaysInMonth:          days,
	}, nil
}
