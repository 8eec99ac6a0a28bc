package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/util"
)

// WindowAllValue is the query/flag spelling of the unbounded window
const WindowAllValue = "All"

// DefaultWindowDays is the window the dashboard opens with
const DefaultWindowDays = 30

// MaxWindowDays bounds N so the lower bound stays representable and never
// lands after today. Longer lookbacks use All.
const MaxWindowDays = 36500

// Window is a trailing N-day lower bound, or All for no bound.
// The zero value is invalid; build windows with WindowAll or LastNDays.
type Window struct {
	days int
	all  bool
}

// WindowAll returns the unbounded window
func WindowAll() Window {
	return Window{all: true}
}

// LastNDays returns a window covering today and the n-1 days before it
func LastNDays(n int) (Window, error) {
	if n <= 0 || n > MaxWindowDays {
		return Window{}, fmt.Errorf("%w: %d days", ErrInvalidWindow, n)
	}
	return Window{days: n}, nil
}

// ParseWindow accepts "All" or a day count in plain decimal form
// ("7", not "+7" or "007")
func ParseWindow(s string) (Window, error) {
	if s == WindowAllValue {
		return WindowAll(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	return LastNDays(n)
}

// Valid reports whether w was built by one of the constructors
func (w Window) Valid() bool {
	return w.all || w.days > 0
}

// IsAll reports whether the window has no lower bound
func (w Window) IsAll() bool {
	return w.all
}

// Days returns the window length, 0 for All
func (w Window) Days() int {
	return w.days
}

// LowerBound returns the first calendar day inside the window relative to now.
// The second result is false when the window is unbounded.
func (w Window) LowerBound(now time.Time) (time.Time, bool) {
	if w.all || w.days <= 0 {
		return time.Time{}, false
	}
	return util.CivilDay(now).AddDate(0, 0, -(w.days - 1)), true
}

func (w Window) String() string {
	if w.all {
		return WindowAllValue
	}
	return strconv.Itoa(w.days)
}
