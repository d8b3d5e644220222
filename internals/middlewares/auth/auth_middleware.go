package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"schoolku_backend/internals/configs"
)

// AuthMiddleware memverifikasi Bearer JWT dan menaruh identitas ke Locals:
// user_id, tenant_id, role. Validasi user/RBAC penuh ada di layanan auth
// terpisah; core fee hanya membaca hasilnya.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[AUTH] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token expired")
		}

		for claim, local := range map[string]string{
			"sub":       "user_id",
			"tenant_id": "tenant_id",
			"role":      "role",
		} {
			if v, ok := claims[claim].(string); ok && strings.TrimSpace(v) != "" {
				c.Locals(local, strings.TrimSpace(v))
			}
		}
		if c.Locals("tenant_id") == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing tenant claim")
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// validateTokenExpiry: cek exp dengan sedikit leeway (clock skew).
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	var expAt time.Time
	switch t := exp.(type) {
	case float64:
		expAt = time.Unix(int64(t), 0)
	case int64:
		expAt = time.Unix(t, 0)
	default:
		return errors.New("invalid exp claim")
	}
	if time.Now().After(expAt.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}
