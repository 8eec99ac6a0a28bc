package engine

import (
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/util"
)

// Criteria narrows an expense snapshot
type Criteria struct {
	Category   domain.CategoryFilter
	Window     domain.Window
	DatePolicy DatePolicy
}

// DefaultCriteria is what the dashboard opens with: every category, last 30 days
func DefaultCriteria() Criteria {
	w, _ := domain.LastNDays(domain.DefaultWindowDays)
	return Criteria{Category: domain.CategoryFilterAll, Window: w}
}

// Validate fails fast on filter values outside the closed sets
func (c Criteria) Validate() error {
	if !c.Category.Valid() {
		return domain.ErrInvalidCategoryFilter
	}
	if !c.Window.Valid() {
		return domain.ErrInvalidWindow
	}
	return nil
}

// FilterExpenses keeps the expenses matching the category filter whose date
// is on or after the window's lower bound. There is no upper bound, so
// future-dated expenses pass. Input order is preserved.
func FilterExpenses(expenses []domain.Expense, criteria Criteria, now time.Time) ([]domain.Expense, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	normalized, _, err := NormalizeDates(expenses, now, criteria.DatePolicy)
	if err != nil {
		return nil, err
	}

	lower, bounded := criteria.Window.LowerBound(now)

	out := make([]domain.Expense, 0, len(normalized))
	for _, e := range normalized {
		if !criteria.Category.Matches(e.Category) {
			continue
		}
		if bounded && util.CivilDay(e.Date).Before(lower) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
