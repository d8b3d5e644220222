package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fee_components/controller"
)

func FeeComponentsRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.FeeComponentHandler{DB: db}

	r.Post("/fee-components", h.Create)
	r.Get("/fee-components", h.List)
	r.Get("/fee-components/:id", h.GetByID)
	r.Patch("/fee-components/:id", h.Update)
	r.Delete("/fee-components/:id", h.Deactivate)
}
