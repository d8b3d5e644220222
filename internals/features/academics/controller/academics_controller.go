package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/academics/model"
	helper "schoolku_backend/internals/helpers"
)

type AcademicsHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List academic years (GET /academic-years)
// -----------------------------------------
func (h *AcademicsHandler) ListAcademicYears(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var list []model.AcademicYear
	if err := h.DB.
		Where("academic_year_tenant_id = ?", tenantID).
		Order("academic_year_start_date DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", list)
}

// -----------------------------------------
// List classes (GET /classes)
// -----------------------------------------
func (h *AcademicsHandler) ListClasses(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := h.DB.Where("class_tenant_id = ?", tenantID)
	if c.Query("active_only", "true") == "true" {
		q = q.Where("class_is_active = TRUE")
	}

	var list []model.SchoolClass
	if err := q.
		Order("class_display_order ASC NULLS LAST, class_name ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", list)
}
