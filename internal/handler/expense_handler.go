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

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest is the create and update body. Amount is a decimal string.
type ExpenseRequest struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input, detail, fieldErrs := parseExpenseRequest(c)
	if detail != "" {
		return NewValidationError(c, detail, fieldErrs)
	}

	expense, err := h.expenseService.CreateExpense(c.Request().Context(), session.UserID, input)
	if err != nil {
		if fieldErr, ok := expenseFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{fieldErr})
		}
		log.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("user_id", session.UserID).Str("expense_id", expense.ID).Msg("Expense created")
	return c.JSON(http.StatusCreated, toExpenseResponse(*expense))
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	expenses, err := h.expenseService.GetExpenses(c.Request().Context(), session.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, toExpenseResponse(*e))
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input, detail, fieldErrs := parseExpenseRequest(c)
	if detail != "" {
		return NewValidationError(c, detail, fieldErrs)
	}

	expense, err := h.expenseService.UpdateExpense(c.Request().Context(), session.UserID, c.Param("id"), input)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if fieldErr, ok := expenseFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{fieldErr})
		}
		log.Error().Err(err).Str("user_id", session.UserID).Str("expense_id", c.Param("id")).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(*expense))
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.expenseService.DeleteExpense(c.Request().Context(), session.UserID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", session.UserID).Str("expense_id", c.Param("id")).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Str("user_id", session.UserID).Str("expense_id", c.Param("id")).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

// parseExpenseRequest reads the body; a non-empty detail means it is unusable
func parseExpenseRequest(c echo.Context) (service.ExpenseInput, string, []ValidationError) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return service.ExpenseInput{}, "Invalid request body", nil
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.ExpenseInput{}, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		}
	}

	return service.ExpenseInput{
		Title:    req.Title,
		Amount:   amount,
		Category: req.Category,
		Date:     req.Date,
	}, "", nil
}

func expenseFieldError(err error) (ValidationError, bool) {
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		return ValidationError{Field: "title", Message: "Title is required"}, true
	case errors.Is(err, domain.ErrTitleTooLong):
		return ValidationError{Field: "title", Message: "Title must be 255 characters or less"}, true
	case errors.Is(err, domain.ErrNegativeAmount):
		return ValidationError{Field: "amount", Message: "Amount must not be negative"}, true
	case errors.Is(err, domain.ErrInvalidCategory):
		return ValidationError{Field: "category", Message: "Category must be one of: Food, Transport, Entertainment, Bills, Other"}, true
	case errors.Is(err, domain.ErrMalformedDate):
		return ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD or an ISO 8601 timestamp"}, true
	}
	return ValidationError{}, false
}

func toExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    money(e.Amount),
		Category:  string(e.Category),
		Date:      e.Date.Format(dateLayout),
		CreatedAt: timestamp(e.CreatedAt),
		UpdatedAt: timestamp(e.UpdatedAt),
	}
}
