package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// ErrInvalidToken is returned when a handshake token fails validation
var ErrInvalidToken = errors.New("invalid token")

// TokenValidator resolves a handshake token to the user it was issued for
type TokenValidator interface {
	ValidateToken(token string) (userID string, err error)
}

// Auth0JWTValidator validates Auth0 access tokens passed as a query
// parameter, since browsers cannot set headers on a WebSocket handshake
type Auth0JWTValidator struct {
	validator *validator.Validator
}

func NewAuth0JWTValidator(domain, audience string) (*Auth0JWTValidator, error) {
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
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0JWTValidator{validator: jwtValidator}, nil
}

// ValidateToken returns the token subject
func (v *Auth0JWTValidator) ValidateToken(token string) (string, error) {
	claims, err := v.validator.ValidateToken(context.Background(), token)
	if err != nil {
		return "", ErrInvalidToken
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return "", ErrInvalidToken
	}
	return validated.RegisteredClaims.Subject, nil
}
