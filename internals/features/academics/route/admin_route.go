package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/academics/controller"
)

// AcademicsRoutes: endpoint read-only untuk master akademik.
func AcademicsRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.AcademicsHandler{DB: db}

	r.Get("/academic-years", h.ListAcademicYears)
	r.Get("/classes", h.ListClasses)
}
