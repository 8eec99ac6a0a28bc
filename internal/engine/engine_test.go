package engine

import (
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func expense(id string, amount float64, category domain.Category, date time.Time) domain.Expense {
	return domain.Expense{
		ID:       id,
		OwnerID:  "auth0|user",
		Title:    "expense " + id,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func lastDays(n int) domain.Window {
	w, err := domain.LastNDays(n)
	if err != nil {
		panic(err)
	}
	return w
}

func marchBudget() domain.MonthlyBudget {
	return domain.MonthlyBudget{ID: "b-1", Year: 2024, Month: 2, Income: 1000, SavingsGoal: 200}
}
