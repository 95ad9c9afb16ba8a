package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKey is the echo context key holding the verified claims.
const ContextKey = "auth.claims"

// Middleware rejects requests without a valid bearer token. Error bodies
// follow the {code, detail} convention used across the API.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":   "unauthorized",
					"detail": "no token provided",
				})
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			claims, err := m.Parse(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":   "unauthorized",
					"detail": "invalid or expired token",
				})
			}

			c.Set(ContextKey, claims)
			return next(c)
		}
	}
}
