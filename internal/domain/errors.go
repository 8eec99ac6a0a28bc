package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrMonthlyBudgetNotFound = errors.New("monthly budget not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrTitleTooLong          = errors.New("title exceeds maximum length")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidCategoryFilter = errors.New("invalid category filter")
	ErrInvalidWindow         = errors.New("invalid date window")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrMalformedDate         = errors.New("malformed expense date")
	ErrDuplicateMonthBudget  = errors.New("duplicate monthly budget for month")
)

// Validation constants
const (
	MaxTitleLength = 255
)
