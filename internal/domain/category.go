package domain

import "fmt"

// Category is the closed set of categories an expense can be stored under
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryOther         Category = "Other"
)

// Categories lists every storable category in display order
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryBills,
	CategoryOther,
}

// Valid reports whether c is one of the storable categories
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryBills, CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts a stored or submitted category name
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// CategoryFilter selects expenses by category. CategoryFilterAll is a
// filter-only value and is never stored on an expense.
type CategoryFilter string

const CategoryFilterAll CategoryFilter = "All"

// FilterFor returns the filter matching exactly one category
func FilterFor(c Category) CategoryFilter {
	return CategoryFilter(c)
}

// Valid reports whether f is All or a storable category
func (f CategoryFilter) Valid() bool {
	if f == CategoryFilterAll {
		return true
	}
	return Category(f).Valid()
}

// Matches reports whether an expense in category c passes the filter
func (f CategoryFilter) Matches(c Category) bool {
	if f == CategoryFilterAll {
		return true
	}
	return Category(f) == c
}

// ParseCategoryFilter converts a query value into a filter
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	f := CategoryFilter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategoryFilter, s)
	}
	return f, nil
}
