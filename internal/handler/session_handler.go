package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the caller's session to the dashboard client
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Me handles GET /api/v1/session
func (h *SessionHandler) Me(c echo.Context) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}
	return c.JSON(http.StatusOK, session)
}
