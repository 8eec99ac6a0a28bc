package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProblemDetails is an RFC 7807 error body
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError points at one offending field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	ErrorTypeValidation    = "https://tracker.app/errors/validation"
	ErrorTypeNotFound      = "https://tracker.app/errors/not-found"
	ErrorTypeUnauthorized  = "https://tracker.app/errors/unauthorized"
	ErrorTypeUnprocessable = "https://tracker.app/errors/unprocessable"
	ErrorTypeInternal      = "https://tracker.app/errors/internal"
)

func problem(c echo.Context, status int, errorType, title, detail string, errors []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     errorType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewValidationError responds 400
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, errors)
}

// NewNotFoundError responds 404
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError responds 401
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewUnprocessableError responds 422 for stored data the request cannot be
// computed over, such as an expense with an unusable date under strict parsing
func NewUnprocessableError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnprocessableEntity, ErrorTypeUnprocessable, "Unprocessable Entity", detail, nil)
}

// NewInternalError responds 500
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

// money renders an amount for display. Rounding happens here and nowhere else.
func money(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

const dateLayout = "2006-01-02"

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
