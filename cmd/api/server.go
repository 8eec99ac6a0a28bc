package main

import (
	"net/http"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/config"
	"github.com/dafibh/fortuna/tracker-backend/internal/handler"
	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/dafibh/fortuna/tracker-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type serverDeps struct {
	hub            *websocket.Hub
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	sessions       *handler.SessionHandler
	expenses       *handler.ExpenseHandler
	monthlyBudgets *handler.MonthlyBudgetHandler
	dashboard      *handler.DashboardHandler
	websocket      *handler.WebSocketHandler
}

// newServer builds the echo instance with the middleware chain and all routes
func newServer(cfg *config.Config, deps serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))
	e.Use(requestLogger())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":            "ok",
			"websocket_clients": deps.hub.TotalClientCount(),
		})
	})

	// The websocket authenticates through its token query parameter
	e.GET("/ws", deps.websocket.HandleWS)

	handler.RegisterRoutes(e, deps.authMiddleware, deps.rateLimiter, deps.sessions, deps.expenses, deps.monthlyBudgets, deps.dashboard)
	return e
}

// requestLogger logs one line per request, at error level for 5xx
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")
			return nil
		}
	}
}
