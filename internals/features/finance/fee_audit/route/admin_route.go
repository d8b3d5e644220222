package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fee_audit/controller"
)

func FeeAuditRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.FeeAuditHandler{DB: db}

	r.Get("/fee-audit-logs", h.List)
}
