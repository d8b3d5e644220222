package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	audit "schoolku_backend/internals/features/finance/fee_audit/service"
	"schoolku_backend/internals/features/finance/fee_components/dto"
	"schoolku_backend/internals/features/finance/fee_components/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeComponentHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// Create (POST /fee-components)
// Kode dinormalisasi uppercase & unik per tenant.
// -----------------------------------------
func (h *FeeComponentHandler) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.FeeComponentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m := in.ToModel(tenantID)

	// Cek duplikat di level aplikasi; race yang lolos ditangkap lewat 23505.
	var n int64
	if err := h.DB.Model(&model.FeeComponent{}).
		Where("fee_component_tenant_id = ? AND fee_component_code = ?", tenantID, m.FeeComponentCode).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "fee component code already exists for this tenant")
	}

	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "fee_components", m.FeeComponentID,
			auditmodel.FeeAuditActionCreate, nil,
			map[string]any{
				"name":     m.FeeComponentName,
				"code":     m.FeeComponentCode,
				"category": string(m.FeeComponentCategory),
			}, changedBy)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee component code already exists for this tenant")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "created", dto.ToFeeComponentResponse(m))
}

// -----------------------------------------
// List (GET /fee-components?active_only=true)
// -----------------------------------------
func (h *FeeComponentHandler) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := h.DB.Where("fee_component_tenant_id = ?", tenantID)
	if c.Query("active_only", "true") == "true" {
		q = q.Where("fee_component_is_active = TRUE")
	}

	var list []model.FeeComponent
	if err := q.Order("fee_component_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToFeeComponentResponses(list))
}

// -----------------------------------------
// Detail (GET /fee-components/:id)
// -----------------------------------------
func (h *FeeComponentHandler) GetByID(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m model.FeeComponent
	if err := h.DB.
		Where("fee_component_id = ? AND fee_component_tenant_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee component not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToFeeComponentResponse(m))
}

// -----------------------------------------
// Update (PATCH /fee-components/:id) — partial
// -----------------------------------------
func (h *FeeComponentHandler) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.FeeComponentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var m model.FeeComponent
	if err := h.DB.
		Where("fee_component_id = ? AND fee_component_tenant_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee component not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Nama juga harus unik per tenant.
	if in.FeeComponentName != nil {
		var n int64
		if err := h.DB.Model(&model.FeeComponent{}).
			Where("fee_component_tenant_id = ? AND fee_component_name = ? AND fee_component_id <> ?",
				tenantID, *in.FeeComponentName, id).
			Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if n > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "fee component name already exists for this tenant")
		}
	}

	oldSnap := map[string]any{
		"name":           m.FeeComponentName,
		"category":       string(m.FeeComponentCategory),
		"allow_discount": m.FeeComponentAllowDiscount,
	}
	dto.ApplyFeeComponentUpdate(&m, in)

	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "fee_components", m.FeeComponentID,
			auditmodel.FeeAuditActionUpdate, oldSnap,
			map[string]any{
				"name":           m.FeeComponentName,
				"category":       string(m.FeeComponentCategory),
				"allow_discount": m.FeeComponentAllowDiscount,
			}, changedBy)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee component name or code already exists for this tenant")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "updated", dto.ToFeeComponentResponse(m))
}

// -----------------------------------------
// Deactivate (DELETE /fee-components/:id) — soft, is_active=false.
// Baris tetap ada selama masih direferensikan template/assignment.
// -----------------------------------------
func (h *FeeComponentHandler) Deactivate(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m model.FeeComponent
	if err := h.DB.
		Where("fee_component_id = ? AND fee_component_tenant_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee component not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !m.FeeComponentIsActive {
		return helper.JsonDeleted(c, "already inactive", dto.ToFeeComponentResponse(m))
	}

	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&m).Update("fee_component_is_active", false).Error; err != nil {
			return err
		}
		m.FeeComponentIsActive = false
		return audit.Log(tx, tenantID, "fee_components", m.FeeComponentID,
			auditmodel.FeeAuditActionDeactivate,
			map[string]any{"is_active": true},
			map[string]any{"is_active": false},
			changedBy)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "deactivated", dto.ToFeeComponentResponse(m))
}
