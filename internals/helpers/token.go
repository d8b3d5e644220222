package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid "+key+" in token")
	}
	return id, nil
}

// GetTenantIDFromToken: tenant aktif dari claims (diset oleh auth middleware).
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "tenant_id")
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "user_id")
}

// GetUserIDPtrFromToken: varian optional untuk kolom changed_by/collected_by.
func GetUserIDPtrFromToken(c *fiber.Ctx) *uuid.UUID {
	id, err := uuidFromLocals(c, "user_id")
	if err != nil {
		return nil
	}
	return &id
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return strings.ToUpper(strings.TrimSpace(v))
	}
	return ""
}
