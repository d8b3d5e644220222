package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/academics/service"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	audit "schoolku_backend/internals/features/finance/fee_audit/service"
	compmodel "schoolku_backend/internals/features/finance/fee_components/model"
	"schoolku_backend/internals/features/finance/fee_structures/dto"
	"schoolku_backend/internals/features/finance/fee_structures/model"
	helper "schoolku_backend/internals/helpers"
)

type ClassFeeStructureHandler struct {
	DB *gorm.DB
}

// komponen harus ada & aktif sebelum boleh dipakai template
func (h *ClassFeeStructureHandler) activeComponent(db *gorm.DB, tenantID, componentID uuid.UUID) error {
	var n int64
	if err := db.Model(&compmodel.FeeComponent{}).
		Where("fee_component_id = ? AND fee_component_tenant_id = ? AND fee_component_is_active = TRUE", componentID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or inactive fee component")
	}
	return nil
}

// -----------------------------------------
// Create (POST /class-fee-structures)
// Satu (year, class, component) hanya boleh satu baris.
// -----------------------------------------
func (h *ClassFeeStructureHandler) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.ClassFeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if in.ClassFeeStructureAmount.IsNegative() {
		return helper.JsonError(c, fiber.StatusBadRequest, "amount must not be negative")
	}

	// Prasyarat kolaborator
	if _, err := academics.GetWritableAcademicYear(h.DB, tenantID, in.ClassFeeStructureAcademicYearID); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := academics.ClassExists(h.DB, tenantID, in.ClassFeeStructureClassID); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.activeComponent(h.DB, tenantID, in.ClassFeeStructureFeeComponentID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var n int64
	if err := h.DB.Model(&model.ClassFeeStructure{}).
		Where("class_fee_structure_academic_year_id = ?", in.ClassFeeStructureAcademicYearID).
		Where("class_fee_structure_class_id = ?", in.ClassFeeStructureClassID).
		Where("class_fee_structure_fee_component_id = ?", in.ClassFeeStructureFeeComponentID).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "fee structure already exists for this class and component")
	}

	m := in.ToModel(tenantID)
	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "class_fee_structures", m.ClassFeeStructureID,
			auditmodel.FeeAuditActionCreate, nil,
			map[string]any{
				"academic_year_id": m.ClassFeeStructureAcademicYearID.String(),
				"class_id":         m.ClassFeeStructureClassID.String(),
				"fee_component_id": m.ClassFeeStructureFeeComponentID.String(),
				"amount":           m.ClassFeeStructureAmount.String(),
				"frequency":        string(m.ClassFeeStructureFrequency),
				"is_mandatory":     m.ClassFeeStructureIsMandatory,
			}, changedBy)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee structure already exists for this class and component")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "created", dto.ToClassFeeStructureResponse(m))
}

// -----------------------------------------
// Update (PATCH /class-fee-structures/:id)
// Ditolak kalau tahun ajarannya sudah CLOSED.
// -----------------------------------------
func (h *ClassFeeStructureHandler) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.ClassFeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if in.ClassFeeStructureAmount != nil && in.ClassFeeStructureAmount.IsNegative() {
		return helper.JsonError(c, fiber.StatusBadRequest, "amount must not be negative")
	}

	var m model.ClassFeeStructure
	if err := h.DB.
		Where("class_fee_structure_id = ? AND class_fee_structure_tenant_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if _, err := academics.GetWritableAcademicYear(h.DB, tenantID, m.ClassFeeStructureAcademicYearID); err != nil {
		return helper.FromFiberError(c, err)
	}

	oldSnap := map[string]any{
		"amount":       m.ClassFeeStructureAmount.String(),
		"frequency":    string(m.ClassFeeStructureFrequency),
		"is_mandatory": m.ClassFeeStructureIsMandatory,
		"is_active":    m.ClassFeeStructureIsActive,
	}
	dto.ApplyClassFeeStructureUpdate(&m, in)

	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "class_fee_structures", m.ClassFeeStructureID,
			auditmodel.FeeAuditActionUpdate, oldSnap,
			map[string]any{
				"amount":       m.ClassFeeStructureAmount.String(),
				"frequency":    string(m.ClassFeeStructureFrequency),
				"is_mandatory": m.ClassFeeStructureIsMandatory,
				"is_active":    m.ClassFeeStructureIsActive,
			}, changedBy)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "updated", dto.ToClassFeeStructureResponse(m))
}

// -----------------------------------------
// Deactivate (DELETE /class-fee-structures/:id) — soft, is_active=false.
// Template nonaktif tidak ikut List/grid dan tidak di-snapshot lagi;
// assignment yang sudah terbentuk tidak tersentuh.
// -----------------------------------------
func (h *ClassFeeStructureHandler) Deactivate(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m model.ClassFeeStructure
	if err := h.DB.
		Where("class_fee_structure_id = ? AND class_fee_structure_tenant_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !m.ClassFeeStructureIsActive {
		return helper.JsonDeleted(c, "already inactive", dto.ToClassFeeStructureResponse(m))
	}

	if _, err := academics.GetWritableAcademicYear(h.DB, tenantID, m.ClassFeeStructureAcademicYearID); err != nil {
		return helper.FromFiberError(c, err)
	}

	changedBy := helper.GetUserIDPtrFromToken(c)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&m).Update("class_fee_structure_is_active", false).Error; err != nil {
			return err
		}
		m.ClassFeeStructureIsActive = false
		return audit.Log(tx, tenantID, "class_fee_structures", m.ClassFeeStructureID,
			auditmodel.FeeAuditActionDeactivate,
			map[string]any{"is_active": true},
			map[string]any{"is_active": false},
			changedBy)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "deactivated", dto.ToClassFeeStructureResponse(m))
}

// -----------------------------------------
// List (GET /class-fee-structures?academic_year_id=&class_id=)
// Hanya baris aktif; academic_year_id wajib.
// -----------------------------------------
func (h *ClassFeeStructureHandler) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id is required")
	}

	q := h.DB.Model(&model.ClassFeeStructure{}).
		Where("class_fee_structure_tenant_id = ?", tenantID).
		Where("class_fee_structure_academic_year_id = ?", *yearID).
		Where("class_fee_structure_is_active = TRUE")

	if v, err := helper.ParseUUIDQuery(c, "class_id"); err != nil {
		return helper.FromFiberError(c, err)
	} else if v != nil {
		q = q.Where("class_fee_structure_class_id = ?", *v)
	}

	var list []model.ClassFeeStructure
	if err := q.Order("class_fee_structure_class_id ASC, class_fee_structure_fee_component_id ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToClassFeeStructureResponses(list))
}

// -----------------------------------------
// Grid (GET /class-fee-structures/by-class?academic_year_id=)
// Seluruh template satu tahun ajaran, dikelompokkan per kelas,
// urut display_order, plus subtotal komponen wajib.
// -----------------------------------------
func (h *ClassFeeStructureHandler) GridByClass(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id is required")
	}
	if _, err := academics.GetAcademicYear(h.DB, tenantID, *yearID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []dto.ClassFeeStructureGridRow
	if err := h.DB.Table("class_fee_structures AS cfs").
		Select(`cfs.class_fee_structure_id,
			cfs.class_fee_structure_class_id,
			sc.class_name,
			sc.class_display_order,
			cfs.class_fee_structure_fee_component_id,
			fc.fee_component_name,
			fc.fee_component_code,
			cfs.class_fee_structure_amount,
			cfs.class_fee_structure_frequency,
			cfs.class_fee_structure_is_mandatory,
			cfs.class_fee_structure_due_date`).
		Joins("JOIN school_classes AS sc ON sc.class_id = cfs.class_fee_structure_class_id").
		Joins("JOIN fee_components AS fc ON fc.fee_component_id = cfs.class_fee_structure_fee_component_id").
		Where("cfs.class_fee_structure_tenant_id = ?", tenantID).
		Where("cfs.class_fee_structure_academic_year_id = ?", *yearID).
		Where("cfs.class_fee_structure_is_active = TRUE").
		Where("cfs.class_fee_structure_deleted_at IS NULL").
		Order("sc.class_display_order ASC NULLS LAST, sc.class_name ASC, fc.fee_component_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	grids := make([]dto.ClassFeeGrid, 0)
	var cur *dto.ClassFeeGrid
	for _, r := range rows {
		if cur == nil || cur.ClassID != r.ClassFeeStructureClassID {
			grids = append(grids, dto.ClassFeeGrid{
				ClassID:        r.ClassFeeStructureClassID,
				ClassName:      r.ClassName,
				MandatoryTotal: decimal.Zero,
				Items:          []dto.ClassFeeStructureGridRow{},
			})
			cur = &grids[len(grids)-1]
		}
		cur.Items = append(cur.Items, r)
		if r.ClassFeeStructureIsMandatory {
			cur.MandatoryTotal = cur.MandatoryTotal.Add(r.ClassFeeStructureAmount)
		}
	}

	return helper.JsonOK(c, "ok", grids)
}
