package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
)

func scenarioExpenses() []domain.Expense {
	return []domain.Expense{
		expense("1", 100, domain.CategoryFood, day(2024, time.March, 1)),
		expense("2", 50, domain.CategoryBills, day(2024, time.March, 2)),
	}
}

func TestGroupByCategory_Scenario(t *testing.T) {
	got := GroupByCategory(scenarioExpenses())
	assert.Equal(t, map[domain.Category]float64{
		domain.CategoryFood:  100,
		domain.CategoryBills: 50,
	}, got)
}

func TestGroupByDay(t *testing.T) {
	input := append(scenarioExpenses(),
		expense("3", 25, domain.CategoryOther, time.Date(2024, time.March, 1, 18, 45, 0, 0, time.UTC)),
	)

	got := GroupByDay(input)
	assert.Equal(t, map[string]float64{
		"2024-03-01": 125,
		"2024-03-02": 50,
	}, got)
}

func TestGrouping_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
	assert.Empty(t, GroupByCategory([]domain.Expense{}))
	assert.Equal(t, 0.0, TotalAmount(nil))
}

func TestGrouping_SumInvariant(t *testing.T) {
	sets := [][]domain.Expense{
		scenarioExpenses(),
		filterFixture(),
		{expense("x", 0.1, domain.CategoryFood, day(2024, time.May, 1)), expense("y", 0.2, domain.CategoryFood, day(2024, time.May, 1))},
	}

	for _, set := range sets {
		byDay, byCategory := 0.0, 0.0
		for _, v := range GroupByDay(set) {
			byDay += v
		}
		for _, v := range GroupByCategory(set) {
			byCategory += v
		}
		assert.InDelta(t, TotalAmount(set), byDay, 1e-9)
		assert.InDelta(t, TotalAmount(set), byCategory, 1e-9)
	}
}

func TestDayGroups_Ascending(t *testing.T) {
	groups := DayGroups(GroupByDay(filterFixture()))

	require.Len(t, groups, 5)
	assert.Equal(t, "2024-01-20", groups[0].Key)
	assert.Equal(t, "2024-04-02", groups[4].Key)
	for i := 1; i < len(groups); i++ {
		assert.Less(t, groups[i-1].Key, groups[i].Key)
	}
}

func TestCategoryGroups_DisplayOrder(t *testing.T) {
	groups := CategoryGroups(GroupByCategory(filterFixture()))

	assert.Equal(t, []domain.DerivedGroup{
		{Key: "Food", Total: 120.5},
		{Key: "Transport", Total: 30},
		{Key: "Bills", Total: 50},
	}, groups)
}
