package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
)

func filterFixture() []domain.Expense {
	return []domain.Expense{
		expense("1", 100, domain.CategoryFood, day(2024, time.March, 1)),
		expense("2", 50, domain.CategoryBills, day(2024, time.March, 2)),
		expense("3", 12.5, domain.CategoryFood, day(2024, time.January, 20)),
		expense("4", 30, domain.CategoryTransport, day(2024, time.March, 15)),
		expense("5", 8, domain.CategoryFood, day(2024, time.April, 2)),
	}
}

func TestFilterExpenses_AllAllReturnsInput(t *testing.T) {
	input := filterFixture()

	got, err := FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: domain.WindowAll()}, testNow)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestFilterExpenses_Category(t *testing.T) {
	got, err := FilterExpenses(filterFixture(), Criteria{
		Category: domain.FilterFor(domain.CategoryFood),
		Window:   domain.WindowAll(),
	}, testNow)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "5", got[2].ID)
}

func TestFilterExpenses_WindowIncludesToday(t *testing.T) {
	got, err := FilterExpenses(filterFixture(), Criteria{
		Category: domain.CategoryFilterAll,
		Window:   lastDays(1),
	}, testNow)
	require.NoError(t, err)

	// Only today and the future-dated record survive a one-day window
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "5", got[1].ID)
}

func TestFilterExpenses_WindowLowerBoundInclusive(t *testing.T) {
	// 15 days back from March 15 is March 1
	got, err := FilterExpenses(filterFixture(), Criteria{
		Category: domain.CategoryFilterAll,
		Window:   lastDays(15),
	}, testNow)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "5"}, ids)

	got, err = FilterExpenses(filterFixture(), Criteria{
		Category: domain.CategoryFilterAll,
		Window:   lastDays(14),
	}, testNow)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFilterExpenses_NarrowingNeverIncreasesTotal(t *testing.T) {
	input := filterFixture()
	loose, err := FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: domain.WindowAll()}, testNow)
	require.NoError(t, err)

	for _, c := range domain.Categories {
		for _, n := range []int{1, 7, 30, 90} {
			narrow, err := FilterExpenses(input, Criteria{Category: domain.FilterFor(c), Window: lastDays(n)}, testNow)
			require.NoError(t, err)
			assert.LessOrEqual(t, TotalAmount(narrow), TotalAmount(loose))

			categoryOnly, err := FilterExpenses(input, Criteria{Category: domain.FilterFor(c), Window: domain.WindowAll()}, testNow)
			require.NoError(t, err)
			assert.LessOrEqual(t, TotalAmount(narrow), TotalAmount(categoryOnly))
		}
	}
}

func TestFilterExpenses_Idempotent(t *testing.T) {
	criteria := Criteria{Category: domain.FilterFor(domain.CategoryFood), Window: lastDays(30)}

	first, err := FilterExpenses(filterFixture(), criteria, testNow)
	require.NoError(t, err)
	second, err := FilterExpenses(filterFixture(), criteria, testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilterExpenses_DoesNotAliasInput(t *testing.T) {
	input := filterFixture()
	got, err := FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: domain.WindowAll()}, testNow)
	require.NoError(t, err)

	got[0].Amount = 999
	assert.Equal(t, 100.0, input[0].Amount)
}

func TestFilterExpenses_InvalidCriteria(t *testing.T) {
	_, err := FilterExpenses(filterFixture(), Criteria{Category: "Groceries", Window: domain.WindowAll()}, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryFilter)

	_, err = FilterExpenses(filterFixture(), Criteria{Category: domain.CategoryFilterAll}, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestFilterExpenses_Empty(t *testing.T) {
	got, err := FilterExpenses(nil, DefaultCriteria(), testNow)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterExpenses_MalformedDate(t *testing.T) {
	input := []domain.Expense{expense("1", 40, domain.CategoryOther, time.Time{})}

	got, err := FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: lastDays(1)}, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testNow, got[0].Date)

	_, err = FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: lastDays(1), DatePolicy: DateStrict}, testNow)
	assert.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestFilterExpenses_LongestWindowKeepsToday(t *testing.T) {
	input := []domain.Expense{expense("today", 12, domain.CategoryFood, day(2024, time.March, 15))}

	got, err := FilterExpenses(input, Criteria{Category: domain.CategoryFilterAll, Window: lastDays(domain.MaxWindowDays)}, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].ID)

	points, err := ProjectSavings(input, march2024, nil, lastDays(domain.MaxWindowDays), testNow)
	require.NoError(t, err)
	assert.Len(t, points, 31)

	_, err = domain.ParseWindow("9223372036854775807")
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}
