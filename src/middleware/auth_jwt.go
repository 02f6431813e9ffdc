package middleware

import (
	"Backend-Results/src/utils"
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals keys ที่ AuthJWT ใส่ไว้ให้ handler ถัดไป
const (
	LocalUserID      = "userId"
	LocalEmail       = "email"
	LocalRole        = "role"
	LocalToken       = "token"
	LocalTokenExpiry = "tokenExpiry"
)

// TokenBlacklist token ที่ logout ไปแล้ว
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthJWT ตรวจ Bearer token ใน header Authorization
func AuthJWT(tokens *utils.JWTManager, blacklist TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenStr == "" {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
		}

		claims, err := tokens.ParseJWT(tokenStr)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid token.")
		}

		if blacklist != nil {
			revoked, err := blacklist.IsTokenBlacklisted(c.UserContext(), tokenStr)
			if err != nil || revoked {
				return utils.HandleError(c, fiber.StatusBadRequest, "Invalid token.")
			}
		}

		var expiry time.Time
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalToken, tokenStr)
		c.Locals(LocalTokenExpiry, expiry)

		return c.Next()
	}
}

// RequireRole ใช้ต่อจาก AuthJWT
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return utils.HandleError(c, fiber.StatusForbidden, "Access denied. Insufficient permissions.")
	}
}
