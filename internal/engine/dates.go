package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
)

// DatePolicy decides what happens to an expense whose date could not be parsed
type DatePolicy int

const (
	// DateFallbackNow substitutes the current date so aggregate totals stay stable
	DateFallbackNow DatePolicy = iota
	// DateStrict rejects the snapshot with domain.ErrMalformedDate
	DateStrict
)

// ParseDatePolicy reads the configuration spelling of a policy
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fallback":
		return DateFallbackNow, nil
	case "strict":
		return DateStrict, nil
	}
	return DateFallbackNow, fmt.Errorf("unknown date policy %q", s)
}

func (p DatePolicy) String() string {
	if p == DateStrict {
		return "strict"
	}
	return "fallback"
}

var expenseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
}

// ParseExpenseDate accepts the date forms clients submit: a bare ISO date or
// an ISO timestamp. The error wraps domain.ErrMalformedDate.
func ParseExpenseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range expenseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrMalformedDate, raw)
}

// NormalizeDates resolves zero (unparseable) dates according to policy. It
// returns a copy of the snapshot and the number of substituted dates.
func NormalizeDates(expenses []domain.Expense, now time.Time, policy DatePolicy) ([]domain.Expense, int, error) {
	out := make([]domain.Expense, len(expenses))
	copy(out, expenses)

	substituted := 0
	for i := range out {
		if !out[i].Date.IsZero() {
			continue
		}
		if policy == DateStrict {
			return nil, 0, fmt.Errorf("%w: expense %s", domain.ErrMalformedDate, out[i].ID)
		}
		out[i].Date = now
		substituted++
	}
	return out, substituted, nil
}
