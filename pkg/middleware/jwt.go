package middleware

import (
	"net/http"
	"strings"

	"MeetingReminder/internal/auth"

	"github.com/labstack/echo/v4"
)

const claimsKey = "claims"

// JWT rejects requests without a valid bearer token and stores its claims on the context.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Token"})
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			claims, err := auth.ValidateToken(key, tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}
