// Package snapshot reads expense and monthly budget records from a TOML file
// so the dashboard figures can be computed without a database.
package snapshot

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
)

// File mirrors the on-disk layout:
//
//	[[expense]]
//	id = "e-1"
//	title = "Groceries"
//	amount = 42.5
//	category = "Food"
//	date = "2024-03-14"
//
//	[[month]]
//	id = "m-1"
//	year = 2024
//	month = 2 # zero-based
//	income = 3000.0
//	savings_goal = 500.0
type File struct {
	Expenses []ExpenseRecord `toml:"expense"`
	Months   []MonthRecord   `toml:"month"`
}

// ExpenseRecord is one [[expense]] table. Date may be a string or a TOML date.
type ExpenseRecord struct {
	ID       string  `toml:"id"`
	Title    string  `toml:"title"`
	Amount   float64 `toml:"amount"`
	Category string  `toml:"category"`
	Date     any     `toml:"date"`
}

// MonthRecord is one [[month]] table
type MonthRecord struct {
	ID          string  `toml:"id"`
	Year        int     `toml:"year"`
	Month       int     `toml:"month"`
	Income      float64 `toml:"income"`
	SavingsGoal float64 `toml:"savings_goal"`
}

// Snapshot is the decoded record set
type Snapshot struct {
	Expenses []domain.Expense
	Budgets  []domain.MonthlyBudget
}

// Load reads and decodes a snapshot file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Decode(string(data))
}

// Decode parses snapshot TOML. Records are checked against the stored-record
// invariants; a date that cannot be parsed is kept as the zero time and left
// to the date policy of whoever computes over the snapshot.
func Decode(data string) (*Snapshot, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parsing snapshot: unknown keys %s", strings.Join(keys, ", "))
	}

	s := &Snapshot{
		Expenses: make([]domain.Expense, 0, len(f.Expenses)),
		Budgets:  make([]domain.MonthlyBudget, 0, len(f.Months)),
	}

	for i, r := range f.Expenses {
		if r.ID == "" {
			r.ID = fmt.Sprintf("expense-%d", i+1)
		}
		e, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.ID, err)
		}
		s.Expenses = append(s.Expenses, e)
	}

	for i, r := range f.Months {
		b := domain.MonthlyBudget{
			ID:          r.ID,
			Year:        r.Year,
			Month:       r.Month,
			Income:      r.Income,
			SavingsGoal: r.SavingsGoal,
		}
		if b.ID == "" {
			b.ID = b.Key().String()
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("month %d (%s): %w", i+1, r.ID, err)
		}
		s.Budgets = append(s.Budgets, b)
	}

	if _, err := engine.IndexBudgets(s.Budgets); err != nil {
		return nil, err
	}
	return s, nil
}

func (r ExpenseRecord) toDomain() (domain.Expense, error) {
	category := domain.CategoryOther
	if r.Category != "" {
		c, err := domain.ParseCategory(r.Category)
		if err != nil {
			return domain.Expense{}, err
		}
		category = c
	}

	e := domain.Expense{
		ID:       r.ID,
		Title:    strings.TrimSpace(r.Title),
		Amount:   r.Amount,
		Category: category,
		Date:     recordDate(r.Date),
	}
	if err := e.Validate(); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

// recordDate returns the zero time for anything it cannot read as a date
func recordDate(v any) time.Time {
	switch d := v.(type) {
	case time.Time:
		// Local TOML dates carry a placeholder zone; keep the wall clock
		return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), time.UTC)
	case string:
		t, err := engine.ParseExpenseDate(d)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}
