package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fee_structures/controller"
)

func FeeStructuresRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.ClassFeeStructureHandler{DB: db}

	r.Post("/class-fee-structures", h.Create)
	r.Get("/class-fee-structures", h.List)
	r.Get("/class-fee-structures/by-class", h.GridByClass)
	r.Patch("/class-fee-structures/:id", h.Update)
	r.Delete("/class-fee-structures/:id", h.Deactivate)
}
