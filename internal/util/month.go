package util

import "time"

// CivilDay strips the time of day and location from t, keeping its calendar
// date as a UTC midnight. Dates compared through CivilDay ignore time zones.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the Gregorian day count of the month, leap years included
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDays returns every calendar day of the month in ascending order
func MonthDays(year int, month time.Month) []time.Time {
	n := DaysInMonth(year, month)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)
	}
	return days
}
