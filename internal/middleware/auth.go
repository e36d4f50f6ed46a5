package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/pkg/jwtutil"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
)

// JWTAuthMiddleware creates a middleware that validates JWT tokens
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			tokenString := parts[1]

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			// Store the claims in the context for later use
			c.Set("user", claims)
			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// RequireRole guards a route group with an allowed-roles check. It runs
// after JWTAuthMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, ok := c.Get("user").(*jwtutil.UserClaims)
			if !ok {
				log.Error("Failed to get user claims from context")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}

			if !allowed[claims.Role] {
				log.Warn("Role not permitted for route",
					zap.String("role", claims.Role),
					zap.String("path", c.Path()))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}

			return next(c)
		}
	}
}

// ClaimsFromEcho retrieves the authenticated claims set by
// JWTAuthMiddleware.
func ClaimsFromEcho(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	return claims, ok
}
