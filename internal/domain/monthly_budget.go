package domain

import (
	"context"
	"time"
)

// MonthlyBudget holds the income and savings goal set for one month.
// Month is zero-based; at most one record exists per (owner, year, month).
type MonthlyBudget struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Income      float64   `json:"income"`
	SavingsGoal float64   `json:"savingsGoal"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Key returns the month the record applies to
func (b MonthlyBudget) Key() MonthKey {
	return MonthKey{Year: b.Year, Month: b.Month}
}

// Validate checks the stored-record invariants
func (b MonthlyBudget) Validate() error {
	if !b.Key().Valid() {
		return ErrInvalidMonth
	}
	if b.Income < 0 || b.SavingsGoal < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Budget is the resolved income and goal for a month. The zero value is the
// result for a month without a record.
type Budget struct {
	Income      float64 `json:"income"`
	SavingsGoal float64 `json:"savingsGoal"`
}

type MonthlyBudgetRepository interface {
	// Upsert inserts the record or replaces income and goal of the existing
	// record for the same month.
	Upsert(ctx context.Context, budget *MonthlyBudget) (*MonthlyBudget, error)
	GetByID(ctx context.Context, ownerID, id string) (*MonthlyBudget, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*MonthlyBudget, error)
	Delete(ctx context.Context, ownerID, id string) error
}
