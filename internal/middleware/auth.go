package middleware

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the profile claims Auth0 adds to access tokens
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Session identifies the authenticated user of a request. It travels in the
// request context; nothing about the caller is kept in process-wide state.
type Session struct {
	UserID string `json:"userId"` // Auth0 subject, owns every record
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom extracts the session stored by WithSession
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.UserID != ""
}

// GetSession extracts the session of an authenticated echo request
func GetSession(c echo.Context) (Session, bool) {
	return SessionFrom(c.Request().Context())
}

// TokenVerifier validates a raw bearer token. *validator.Validator satisfies it.
type TokenVerifier interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// AuthMiddleware authenticates requests with Auth0 access tokens
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware builds a verifier for the Auth0 tenant and API audience
func NewAuthMiddleware(domain, audience string) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuthMiddlewareWithVerifier(jwtValidator), nil
}

// NewAuthMiddlewareWithVerifier uses an already configured verifier
func NewAuthMiddlewareWithVerifier(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate rejects requests without a valid bearer token and stores the
// resulting Session in the request context
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			claims, err := m.verifier.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "Invalid or expired token")
			}

			session, ok := sessionFromClaims(claims)
			if !ok {
				return unauthorizedError(c, "Token has no subject")
			}

			c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}

func sessionFromClaims(claims interface{}) (Session, bool) {
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return Session{}, false
	}

	session := Session{UserID: validated.RegisteredClaims.Subject}
	if custom, ok := validated.CustomClaims.(*CustomClaims); ok {
		session.Email = custom.Email
		session.Name = custom.Name
	}
	return session, true
}
