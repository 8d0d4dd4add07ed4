package middleware

import (
	"fmt"
	"strings"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the authenticated user ID.
const UserIDKey = "userID"

// TokenVerifier resolves a bearer token to the user ID it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTAuthMiddleware checks for a valid bearer token and stores the caller's
// user ID in the context.
func JWTAuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("%w: missing Authorization header", common.ErrUnauthorized)
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fmt.Errorf("%w: Authorization header must be in Bearer format", common.ErrUnauthorized)
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller, or "" outside JWTAuthMiddleware.
func UserID(c echo.Context) string {
	if id, ok := c.Get(UserIDKey).(string); ok {
		return id
	}
	return ""
}
