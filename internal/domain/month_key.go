package domain

import (
	"fmt"
	"time"
)

// MonthKey identifies one calendar month. Month is zero-based (0 = January),
// matching how monthly budget records are stored.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewMonthKey validates and builds a key from a zero-based month
func NewMonthKey(year, month int) (MonthKey, error) {
	k := MonthKey{Year: year, Month: month}
	if !k.Valid() {
		return MonthKey{}, fmt.Errorf("%w: year %d month %d", ErrInvalidMonth, year, month)
	}
	return k, nil
}

// MonthKeyOf returns the key of the month containing t
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month()) - 1}
}

// ParseMonthParam parses the one-based "YYYY-MM" form used by date pickers
func ParseMonthParam(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return NewMonthKey(t.Year(), int(t.Month())-1)
}

// Valid reports whether the month is in [0,11] and the year has four digits
func (k MonthKey) Valid() bool {
	return k.Month >= 0 && k.Month <= 11 && k.Year >= 1000 && k.Year <= 9999
}

// TimeMonth converts the zero-based month to time.Month
func (k MonthKey) TimeMonth() time.Month {
	return time.Month(k.Month + 1)
}

// Ordinal orders keys chronologically
func (k MonthKey) Ordinal() int {
	return k.Year*12 + k.Month
}

// String renders the one-based "YYYY-MM" form
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month+1)
}
