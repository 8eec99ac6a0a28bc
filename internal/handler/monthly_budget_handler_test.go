package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/tracker-backend/internal/service"
	"github.com/dafibh/fortuna/tracker-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMonthlyBudgetHandler() (*MonthlyBudgetHandler, *testutil.MockMonthlyBudgetRepository) {
	repo := testutil.NewMockMonthlyBudgetRepository()
	return NewMonthlyBudgetHandler(service.NewMonthlyBudgetService(repo)), repo
}

func saveBudget(t *testing.T, e *echo.Echo, h *MonthlyBudgetHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/monthly-budgets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupSessionContext(c, testUserID, "", "")
	require.NoError(t, h.SaveMonthlyBudget(c))
	return rec
}

func TestSaveMonthlyBudget_Success(t *testing.T) {
	e := echo.New()
	h, _ := newMonthlyBudgetHandler()

	rec := saveBudget(t, e, h, `{"month": "2024-03", "income": "1000", "savingsGoal": "300"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp MonthlyBudgetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 2, resp.Month, "month is stored zero-based")
	assert.Equal(t, "2024-03", resp.Label)
	assert.Equal(t, "1000.00", resp.Income)
	assert.Equal(t, "300.00", resp.SavingsGoal)
}

func TestSaveMonthlyBudget_UpsertsSameMonth(t *testing.T) {
	e := echo.New()
	h, repo := newMonthlyBudgetHandler()

	first := saveBudget(t, e, h, `{"month": "2024-03", "income": "1000", "savingsGoal": "300"}`)
	second := saveBudget(t, e, h, `{"month": "2024-03", "income": "1200"}`)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b MonthlyBudgetResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "1200.00", b.Income)
	assert.Equal(t, "0.00", b.SavingsGoal)
	assert.Len(t, repo.Budgets, 1)
}

func TestSaveMonthlyBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"month out of range", `{"month": "2024-13", "income": "1"}`, "month"},
		{"month missing", `{"income": "1"}`, "month"},
		{"income not a number", `{"month": "2024-03", "income": "lots"}`, "income"},
		{"negative goal", `{"month": "2024-03", "income": "1", "savingsGoal": "-5"}`, "income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, repo := newMonthlyBudgetHandler()

			rec := saveBudget(t, e, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			p := decodeProblem(t, rec)
			require.NotEmpty(t, p.Errors)
			assert.Equal(t, tt.field, p.Errors[0].Field)
			assert.Empty(t, repo.Budgets)
		})
	}
}

func TestGetMonthlyBudgets_NewestFirst(t *testing.T) {
	e := echo.New()
	h, _ := newMonthlyBudgetHandler()
	for _, month := range []string{"2023-12", "2024-02", "2024-01"} {
		rec := saveBudget(t, e, h, `{"month": "`+month+`", "income": "100"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monthly-budgets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupSessionContext(c, testUserID, "", "")
	require.NoError(t, h.GetMonthlyBudgets(c))

	var resp []MonthlyBudgetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "2024-02", resp[0].Label)
	assert.Equal(t, "2024-01", resp[1].Label)
	assert.Equal(t, "2023-12", resp[2].Label)
}

func TestDeleteMonthlyBudget_NotFound(t *testing.T) {
	e := echo.New()
	h, _ := newMonthlyBudgetHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/monthly-budgets/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	setupSessionContext(c, testUserID, "", "")

	require.NoError(t, h.DeleteMonthlyBudget(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
