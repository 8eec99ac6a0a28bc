package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/dafibh/fortuna/tracker-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler serves the aggregated dashboard views
type DashboardHandler struct {
	dashboardService *service.DashboardService
	defaultWindow    domain.Window
}

// NewDashboardHandler creates a new DashboardHandler. defaultWindow applies
// when a request has no window parameter.
func NewDashboardHandler(dashboardService *service.DashboardService, defaultWindow domain.Window) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		defaultWindow:    defaultWindow,
	}
}

// FilteredExpensesResponse is the expense list under the active filters
type FilteredExpensesResponse struct {
	Category string            `json:"category"`
	Window   string            `json:"window"`
	Expenses []ExpenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

// GroupResponse is one grouped total
type GroupResponse struct {
	Key   string `json:"key"`
	Total string `json:"total"`
}

// GroupsResponse holds the by-day and by-category totals
type GroupsResponse struct {
	ByDay      []GroupResponse `json:"byDay"`
	ByCategory []GroupResponse `json:"byCategory"`
	Total      string          `json:"total"`
}

// MonthSummaryResponse holds a month's resolved budget and overview cards
type MonthSummaryResponse struct {
	Year                 int    `json:"year"`
	Month                int    `json:"month"` // zero-based
	Label                string `json:"label"`
	Income               string `json:"income"`
	SavingsGoal          string `json:"savingsGoal"`
	MonthExpenses        string `json:"monthExpenses"`
	ProjectedSavings     string `json:"projectedSavings"`
	BaselineDailySavings string `json:"baselineDailySavings"`
	DaysInMonth          int    `json:"daysInMonth"`
}

// ProjectionPointResponse is one day of the savings trajectory
type ProjectionPointResponse struct {
	Date               string `json:"date"`
	DailyExpense       string `json:"dailyExpense"`
	ProjectedSavings   string `json:"projectedSavings"`
	CumulativeExpenses string `json:"cumulativeExpenses"`
	RemainingSavings   string `json:"remainingSavings"`
	DaysLeft           int    `json:"daysLeft"`
}

// ProjectionResponse is the savings trajectory of the selected month
type ProjectionResponse struct {
	Month  string                    `json:"month"`
	Points []ProjectionPointResponse `json:"points"`
}

// GetExpenses handles GET /api/v1/dashboard/expenses
func (h *DashboardHandler) GetExpenses(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	criteria, fieldErrs := h.parseCriteria(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid filter", fieldErrs)
	}

	result, err := h.dashboardService.GetFilteredExpenses(c.Request().Context(), session.UserID, criteria)
	if err != nil {
		return h.engineError(c, err, session.UserID, "Failed to get filtered expenses")
	}

	expenses := make([]ExpenseResponse, 0, len(result.Expenses))
	for _, e := range result.Expenses {
		expenses = append(expenses, toExpenseResponse(e))
	}
	return c.JSON(http.StatusOK, FilteredExpensesResponse{
		Category: string(criteria.Category),
		Window:   criteria.Window.String(),
		Expenses: expenses,
		Total:    money(result.Total),
	})
}

// GetGroups handles GET /api/v1/dashboard/groups
func (h *DashboardHandler) GetGroups(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	criteria, fieldErrs := h.parseCriteria(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid filter", fieldErrs)
	}

	groups, err := h.dashboardService.GetGroups(c.Request().Context(), session.UserID, criteria)
	if err != nil {
		return h.engineError(c, err, session.UserID, "Failed to get expense groups")
	}

	return c.JSON(http.StatusOK, GroupsResponse{
		ByDay:      toGroupResponses(groups.ByDay),
		ByCategory: toGroupResponses(groups.ByCategory),
		Total:      money(groups.Total),
	})
}

// GetMonthSummary handles GET /api/v1/dashboard/months/:year/:month
// where :month is one-based
func (h *DashboardHandler) GetMonthSummary(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	key, err := parseYearMonthParams(c.Param("year"), c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Year must be four digits and month between 1 and 12"},
		})
	}

	criteria, fieldErrs := h.parseCriteria(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid filter", fieldErrs)
	}

	summary, err := h.dashboardService.GetMonthSummary(c.Request().Context(), session.UserID, key, criteria)
	if err != nil {
		return h.engineError(c, err, session.UserID, "Failed to get month summary")
	}

	o := summary.Overview
	return c.JSON(http.StatusOK, MonthSummaryResponse{
		Year:                 key.Year,
		Month:                key.Month,
		Label:                key.String(),
		Income:               money(summary.Budget.Income),
		SavingsGoal:          money(summary.Budget.SavingsGoal),
		MonthExpenses:        money(o.MonthExpenses),
		ProjectedSavings:     money(o.ProjectedSavings),
		BaselineDailySavings: money(o.BaselineDailySavings),
		DaysInMonth:          o.DaysInMonth,
	})
}

// GetProjection handles GET /api/v1/dashboard/projection
// Query: month=YYYY-MM (one-based, default current), category, window
func (h *DashboardHandler) GetProjection(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	key := domain.MonthKeyOf(h.dashboardService.Now())
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := domain.ParseMonthParam(raw)
		if err != nil {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Month must be YYYY-MM"},
			})
		}
		key = parsed
	}

	criteria, fieldErrs := h.parseCriteria(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid filter", fieldErrs)
	}

	points, err := h.dashboardService.GetProjection(c.Request().Context(), session.UserID, key, criteria)
	if err != nil {
		return h.engineError(c, err, session.UserID, "Failed to compute projection")
	}

	response := ProjectionResponse{
		Month:  key.String(),
		Points: make([]ProjectionPointResponse, 0, len(points)),
	}
	for _, p := range points {
		response.Points = append(response.Points, ProjectionPointResponse{
			Date:               p.Date.Format(dateLayout),
			DailyExpense:       money(p.DailyExpense),
			ProjectedSavings:   money(p.ProjectedSavings),
			CumulativeExpenses: money(p.CumulativeExpenses),
			RemainingSavings:   money(p.RemainingSavings),
			DaysLeft:           p.DaysLeft,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// parseCriteria reads category and window, rejecting values outside the closed sets
func (h *DashboardHandler) parseCriteria(c echo.Context) (engine.Criteria, []ValidationError) {
	criteria := engine.Criteria{
		Category: domain.CategoryFilterAll,
		Window:   h.defaultWindow,
	}

	var errs []ValidationError
	if raw := c.QueryParam("category"); raw != "" {
		f, err := domain.ParseCategoryFilter(raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: "category", Message: "Category must be All or one of: Food, Transport, Entertainment, Bills, Other"})
		}
		criteria.Category = f
	}
	if raw := c.QueryParam("window"); raw != "" {
		w, err := domain.ParseWindow(raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: "window", Message: fmt.Sprintf("Window must be All or a number of days from 1 to %d", domain.MaxWindowDays)})
		}
		criteria.Window = w
	}
	return criteria, errs
}

func (h *DashboardHandler) engineError(c echo.Context, err error, userID, msg string) error {
	switch {
	case errors.Is(err, domain.ErrMalformedDate):
		return NewUnprocessableError(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCategoryFilter), errors.Is(err, domain.ErrInvalidWindow), errors.Is(err, domain.ErrInvalidMonth):
		return NewValidationError(c, err.Error(), nil)
	}
	log.Error().Err(err).Str("user_id", userID).Msg(msg)
	return NewInternalError(c, msg)
}

func parseYearMonthParams(yearParam, monthParam string) (domain.MonthKey, error) {
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return domain.MonthKey{}, err
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil {
		return domain.MonthKey{}, err
	}
	return domain.NewMonthKey(year, month-1)
}

func toGroupResponses(groups []domain.DerivedGroup) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{Key: g.Key, Total: money(g.Total)})
	}
	return out
}
