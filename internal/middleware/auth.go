package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"todo-api/internal/config"
	"todo-api/pkg/crypto"
	"todo-api/pkg/logger"
)

// SessionCookie adalah nama cookie yang membawa session token.
const SessionCookie = "auth_token"

// unauthorized mengembalikan respons 401 yang selalu sama, apapun penyebabnya.
// Alasan sebenarnya hanya masuk ke security log, tidak pernah ke client.
func unauthorized(c *fiber.Ctx, reason string) error {
	logger.SecurityLogger.Warn("Unauthorized request",
		zap.String("reason", reason),
		zap.String("method", c.Method()),
		zap.String("url", c.OriginalURL()),
	)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
		"success": false,
		"status":  401,
	})
}

// RequireSession memvalidasi session cookie pada setiap request yang dilindungi.
// Cookie dibuka dengan cookie secret, lalu JWT di dalamnya diverifikasi
// signature dan expiry-nya. User id dan role disimpan di locals.
func RequireSession(c *fiber.Ctx) error {
	sealed := c.Cookies(SessionCookie)
	if sealed == "" {
		return unauthorized(c, "missing session cookie")
	}

	raw, err := crypto.Decrypt(sealed, config.CookieKey)
	if err != nil {
		return unauthorized(c, "cookie unseal failed")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		return unauthorized(c, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c, "invalid token claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return unauthorized(c, "token expired")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return unauthorized(c, "invalid user ID in token")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return unauthorized(c, "invalid role in token")
	}
	c.Locals("userID", int(userID))
	c.Locals("role", role)
	return c.Next()
}
