package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

const testUserID = "auth0|alice"

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

// setupSessionContext attaches an authenticated session the way the auth
// middleware does
func setupSessionContext(c echo.Context, userID, email, name string) {
	ctx := middleware.WithSession(c.Request().Context(), middleware.Session{
		UserID: userID,
		Email:  email,
		Name:   name,
	})
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestSessionHandler_Me(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupSessionContext(c, testUserID, "alice@example.com", "Alice")

	if err := NewSessionHandler().Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var session middleware.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if session.UserID != testUserID {
		t.Errorf("Expected user %s, got %s", testUserID, session.UserID)
	}
	if session.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", session.Email)
	}
}

func TestSessionHandler_Me_NoSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewSessionHandler().Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
