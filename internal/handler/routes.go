package handler

import (
	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. Every /api/v1 route requires a session.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, sessionHandler *SessionHandler, expenseHandler *ExpenseHandler, monthlyBudgetHandler *MonthlyBudgetHandler, dashboardHandler *DashboardHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	api.GET("/session", sessionHandler.Me)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Monthly budget routes
	budgets := api.Group("/monthly-budgets")
	budgets.GET("", monthlyBudgetHandler.GetMonthlyBudgets)
	budgets.PUT("", monthlyBudgetHandler.SaveMonthlyBudget)
	budgets.DELETE("/:id", monthlyBudgetHandler.DeleteMonthlyBudget)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/expenses", dashboardHandler.GetExpenses)
	dashboard.GET("/groups", dashboardHandler.GetGroups)
	dashboard.GET("/months/:year/:month", dashboardHandler.GetMonthSummary)
	dashboard.GET("/projection", dashboardHandler.GetProjection)
}
