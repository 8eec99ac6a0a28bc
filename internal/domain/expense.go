package domain

import (
	"context"
	"strings"
	"time"
)

// Expense is a single dated spend. A zero Date marks a date the store could
// not parse; the engine decides how to treat it.
type Expense struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  Category  `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the stored-record invariants
func (e Expense) Validate() error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// UpdateExpenseData holds the fields replaced on edit
type UpdateExpenseData struct {
	Title    string
	Amount   float64
	Category Category
	Date     time.Time
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) (*Expense, error)
	GetByID(ctx context.Context, ownerID, id string) (*Expense, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Expense, error)
	Update(ctx context.Context, ownerID, id string, data *UpdateExpenseData) (*Expense, error)
	Delete(ctx context.Context, ownerID, id string) error
}
