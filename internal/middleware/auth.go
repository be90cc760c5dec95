package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const userIDLocal = "user_id"

// TokenPrefix is the Redis key prefix for opaque auth tokens. Value is the
// user id; TTL bounds the session lifetime.
const TokenPrefix = "token:"

// TokenTTL is the auth token lifetime.
const TokenTTL = 24 * time.Hour

// RequireAuth resolves "Authorization: Bearer <token>" through Redis to a
// user id in Locals. Missing or unknown tokens get 401 with the standard
// error format.
func RequireAuth(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Authentification requise")
		}
		val, err := rdb.Get(context.Background(), TokenPrefix+token).Result()
		if err != nil {
			return response.Unauthorized(c, "Token invalide ou expiré")
		}
		id, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return response.Unauthorized(c, "Token invalide ou expiré")
		}
		c.Locals(userIDLocal, uint(id))
		return c.Next()
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(userIDLocal).(uint)
	return id, ok
}
