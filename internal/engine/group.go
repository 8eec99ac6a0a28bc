package engine

import (
	"sort"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
)

// DayKeyLayout formats the by-day grouping key
const DayKeyLayout = "2006-01-02"

// DayKey returns the grouping key of the calendar day containing t
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// GroupByDay totals amounts per calendar day. Days without expenses are absent.
func GroupByDay(expenses []domain.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[DayKey(e.Date)] += e.Amount
	}
	return totals
}

// GroupByCategory totals amounts per category present in the snapshot
func GroupByCategory(expenses []domain.Expense) map[domain.Category]float64 {
	totals := make(map[domain.Category]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

// TotalAmount sums every amount in the snapshot
func TotalAmount(expenses []domain.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// DayGroups orders a by-day grouping chronologically
func DayGroups(totals map[string]float64) []domain.DerivedGroup {
	groups := make([]domain.DerivedGroup, 0, len(totals))
	for key, total := range totals {
		groups = append(groups, domain.DerivedGroup{Key: key, Total: total})
	}
	// The key layout sorts lexically in date order
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// CategoryGroups orders a by-category grouping in category display order
func CategoryGroups(totals map[domain.Category]float64) []domain.DerivedGroup {
	groups := make([]domain.DerivedGroup, 0, len(totals))
	for _, c := range domain.Categories {
		if total, ok := totals[c]; ok {
			groups = append(groups, domain.DerivedGroup{Key: string(c), Total: total})
		}
	}
	return groups
}
