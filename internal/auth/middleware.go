package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/errors"
)

// ContextKey is where the verified *Claims are stored on the echo.Context.
const ContextKey = "user"

// TokenVerifier recovers claims from a signed token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Middleware accepts "Authorization: Bearer <token>" as well as a bare token in the
// Authorization header. A missing header yields 403, a bad or expired token 401.
func Middleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(strings.TrimSpace(token))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)) == "" {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: errors.ErrMissingToken.Error(),
					Code:  "MISSING_TOKEN",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrInvalidToken.Error(),
				Code:  "INVALID_TOKEN",
			})
		},
	})
}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireRole rejects callers whose role claim is not one of roles.
// It must run after Middleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: errors.ErrMissingToken.Error(),
					Code:  "MISSING_TOKEN",
				})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: errors.ErrForbidden.Error(),
				Code:  "FORBIDDEN",
			})
		}
	}
}
