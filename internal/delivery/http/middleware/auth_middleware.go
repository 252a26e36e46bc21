package middleware

import (
	"errors"
	"fmt"
	"strings"

	"mentor-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
	CtxEmailKey  = "email"
	CtxNameKey   = "name"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Access token required", nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Invalid or expired token", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid or expired token", err)
		}

		userID, err := claims.UserID()
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid or expired token", err)
		}

		c.Locals(CtxUserIDKey, userID)
		c.Locals(CtxRoleKey, claims.Role)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxNameKey, claims.Name)

		return c.Next()
	}
}

// RequireRole gates a route group to one role; it assumes the auth
// middleware already ran.
func RequireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		actual, ok := c.Locals(CtxRoleKey).(string)
		if !ok || actual != role {
			return NewAppError(fiber.StatusForbidden, fmt.Sprintf("Access denied. %s role required.", role), nil)
		}
		return c.Next()
	}
}

// UserIDFromCtx reads the authenticated subject id stored by the auth
// middleware.
func UserIDFromCtx(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(CtxUserIDKey).(int64)
	return id, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
