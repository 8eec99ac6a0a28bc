package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/dafibh/fortuna/tracker-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MonthlyBudgetHandler handles monthly budget HTTP requests
type MonthlyBudgetHandler struct {
	budgetService *service.MonthlyBudgetService
}

// NewMonthlyBudgetHandler creates a new MonthlyBudgetHandler
func NewMonthlyBudgetHandler(budgetService *service.MonthlyBudgetService) *MonthlyBudgetHandler {
	return &MonthlyBudgetHandler{budgetService: budgetService}
}

// MonthlyBudgetRequest sets a month's figures. Month is "YYYY-MM", one-based.
type MonthlyBudgetRequest struct {
	Month       string `json:"month"`
	Income      string `json:"income"`
	SavingsGoal string `json:"savingsGoal"`
}

// MonthlyBudgetResponse represents a monthly budget in API responses.
// Month is zero-based; Label is the one-based "YYYY-MM" form.
type MonthlyBudgetResponse struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Label       string `json:"label"`
	Income      string `json:"income"`
	SavingsGoal string `json:"savingsGoal"`
	UpdatedAt   string `json:"updatedAt"`
}

// SaveMonthlyBudget handles PUT /api/v1/monthly-budgets
func (h *MonthlyBudgetHandler) SaveMonthlyBudget(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req MonthlyBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	key, err := domain.ParseMonthParam(req.Month)
	if err != nil {
		errs = append(errs, ValidationError{Field: "month", Message: "Month must be YYYY-MM"})
	}
	income, err := parseOptionalAmount(req.Income)
	if err != nil {
		errs = append(errs, ValidationError{Field: "income", Message: "Must be a valid decimal number"})
	}
	goal, err := parseOptionalAmount(req.SavingsGoal)
	if err != nil {
		errs = append(errs, ValidationError{Field: "savingsGoal", Message: "Must be a valid decimal number"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	budget, err := h.budgetService.SaveMonthlyBudget(c.Request().Context(), session.UserID, service.MonthlyBudgetInput{
		Month:       key,
		Income:      income,
		SavingsGoal: goal,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNegativeAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "income", Message: "Income and savings goal must not be negative"},
			})
		}
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month is out of range"},
			})
		}
		log.Error().Err(err).Str("user_id", session.UserID).Str("month", req.Month).Msg("Failed to save monthly budget")
		return NewInternalError(c, "Failed to save monthly budget")
	}

	log.Info().Str("user_id", session.UserID).Str("month", key.String()).Msg("Monthly budget saved")
	return c.JSON(http.StatusOK, toMonthlyBudgetResponse(*budget))
}

// GetMonthlyBudgets handles GET /api/v1/monthly-budgets
func (h *MonthlyBudgetHandler) GetMonthlyBudgets(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.GetMonthlyBudgets(c.Request().Context(), session.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to get monthly budgets")
		return NewInternalError(c, "Failed to get monthly budgets")
	}

	response := make([]MonthlyBudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		response = append(response, toMonthlyBudgetResponse(b))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteMonthlyBudget handles DELETE /api/v1/monthly-budgets/:id
func (h *MonthlyBudgetHandler) DeleteMonthlyBudget(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.budgetService.DeleteMonthlyBudget(c.Request().Context(), session.UserID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrMonthlyBudgetNotFound) {
			return NewNotFoundError(c, "Monthly budget not found")
		}
		log.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to delete monthly budget")
		return NewInternalError(c, "Failed to delete monthly budget")
	}
	return c.NoContent(http.StatusNoContent)
}

// parseOptionalAmount treats an empty field as zero
func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func toMonthlyBudgetResponse(b domain.MonthlyBudget) MonthlyBudgetResponse {
	return MonthlyBudgetResponse{
		ID:          b.ID,
		Year:        b.Year,
		Month:       b.Month,
		Label:       b.Key().String(),
		Income:      money(b.Income),
		SavingsGoal: money(b.SavingsGoal),
		UpdatedAt:   timestamp(b.UpdatedAt),
	}
}
