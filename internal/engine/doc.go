// Package engine turns snapshots of expenses and monthly budgets into the
// dashboard's filtered views, grouped totals and projected-savings
// trajectory.
//
// Every function is pure: inputs are never mutated, nothing reads the wall
// clock, and callers pass "now" explicitly wherever a trailing window is
// evaluated. Concurrent calls over independent snapshots need no
// coordination. Amounts are float64 and are never rounded here.
package engine
