package domain

import "time"

// DerivedGroup is one entry of a grouping reduction
type DerivedGroup struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// ProjectionPoint is one day of the projected-savings trajectory
type ProjectionPoint struct {
	Date               time.Time `json:"date"`
	DailyExpense       float64   `json:"dailyExpense"`
	ProjectedSavings   float64   `json:"projectedSavings"`
	CumulativeExpenses float64   `json:"cumulativeExpenses"`
	RemainingSavings   float64   `json:"remainingSavings"`
	DaysLeft           int       `json:"daysLeft"`
}

// MonthOverview summarizes a selected month for the overview cards
type MonthOverview struct {
	Month                MonthKey `json:"month"`
	Income               float64  `json:"income"`
	SavingsGoal          float64  `json:"savingsGoal"`
	MonthExpenses        float64  `json:"monthExpenses"`
	ProjectedSavings     float64  `json:"projectedSavings"`
	BaselineDailySavings float64  `json:"baselineDailySavings"`
	DaysInMonth          int      `json:"daysInMonth"`
}

// FilteredExpenses is the expense list shown under the active filters
type FilteredExpenses struct {
	Expenses []Expense `json:"expenses"`
	Total    float64   `json:"total"`
}

// ExpenseGroups holds both grouping reductions of one filtered snapshot
type ExpenseGroups struct {
	ByDay      []DerivedGroup `json:"byDay"`
	ByCategory []DerivedGroup `json:"byCategory"`
	Total      float64        `json:"total"`
}

// MonthSummary is the resolved budget of a month with its overview figures
type MonthSummary struct {
	Budget   Budget        `json:"budget"`
	Overview MonthOverview `json:"overview"`
}
