package engine

import (
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/util"
)

// ProjectSavings walks the days of the selected month and amortizes what is
// left of income minus savings goal over the days remaining.
//
// expenses is the already filtered snapshot. Days before the window's lower
// bound are dropped, so a bound after the month's last day yields no points.
// A day whose remaining savings are not positive projects zero rather than a
// negative figure.
func ProjectSavings(
	expenses []domain.Expense,
	key domain.MonthKey,
	budgets []domain.MonthlyBudget,
	window domain.Window,
	now time.Time,
) ([]domain.ProjectionPoint, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidMonth
	}
	if !window.Valid() {
		return nil, domain.ErrInvalidWindow
	}

	budget := ResolveMonthBudget(budgets, key)

	days := util.MonthDays(key.Year, key.TimeMonth())
	if lower, bounded := window.LowerBound(now); bounded {
		retained := days[:0:0]
		for _, d := range days {
			if !d.Before(lower) {
				retained = append(retained, d)
			}
		}
		days = retained
	}

	daily := GroupByDay(expenses)

	points := make([]domain.ProjectionPoint, 0, len(days))
	cumulative := 0.0
	for i, d := range days {
		spent := daily[DayKey(d)]
		cumulative += spent
		remaining := budget.Income - budget.SavingsGoal - cumulative
		daysLeft := len(days) - i

		projected := 0.0
		if remaining > 0 {
			projected = remaining / float64(daysLeft)
		}

		points = append(points, domain.ProjectionPoint{
			Date:               d,
			DailyExpense:       spent,
			ProjectedSavings:   projected,
			CumulativeExpenses: cumulative,
			RemainingSavings:   remaining,
			DaysLeft:           daysLeft,
		})
	}
	return points, nil
}
