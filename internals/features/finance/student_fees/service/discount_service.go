package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	audit "schoolku_backend/internals/features/finance/fee_audit/service"
	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Discount service — grant & deactivate, selalu diikuti
   recalc assignment dalam transaksi yang sama.
========================================================= */

// allowDiscountForAssignment: untuk assignment TEMPLATE, cek flag
// allow_discount komponen asalnya. CUSTOM selalu boleh.
func allowDiscountForAssignment(tx *gorm.DB, a *model.StudentFeeAssignment) error {
	if a.StudentFeeAssignmentSourceType != model.FeeSourceTemplate || a.StudentFeeAssignmentClassFeeStructureID == nil {
		return nil
	}
	var allow bool
	err := tx.Raw(`
		SELECT fc.fee_component_allow_discount
		FROM class_fee_structures cfs
		JOIN fee_components fc ON fc.fee_component_id = cfs.class_fee_structure_fee_component_id
		WHERE cfs.class_fee_structure_id = ?`, *a.StudentFeeAssignmentClassFeeStructureID).
		Scan(&allow).Error
	if err != nil {
		return err
	}
	if !allow {
		return fiber.NewError(fiber.StatusBadRequest, "discounts are not allowed for this fee component")
	}
	return nil
}

// AddDiscount memberi diskon pada satu assignment. callerRole dipakai
// untuk gate persentase besar: di atas ambang perlu admin-tier.
func AddDiscount(
	db *gorm.DB,
	tenantID, assignmentID uuid.UUID,
	in dto.DiscountCreateDTO,
	callerRole string,
	changedBy *uuid.UUID,
) (*model.StudentFeeDiscount, *model.StudentFeeAssignment, error) {
	if in.DiscountValue.IsNegative() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "discount value must not be negative")
	}

	dType := model.FeeDiscountType(strings.ToLower(strings.TrimSpace(in.DiscountType)))
	dCategory := model.FeeDiscountCategory(strings.ToUpper(strings.TrimSpace(in.DiscountCategory)))
	if !dCategory.Valid() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid discount category")
	}

	// Gate kebijakan: persentase > ambang hanya boleh admin-tier.
	if dType == model.FeeDiscountTypePercentage &&
		in.DiscountValue.GreaterThan(configs.DiscountApprovalThreshold) &&
		!constants.IsAdminTier(callerRole) {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "discount above approval threshold requires an admin role")
	}

	var (
		d model.StudentFeeDiscount
		a *model.StudentFeeAssignment
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		a, err = lockAssignment(tx, tenantID, assignmentID)
		if err != nil {
			return err
		}
		if err := allowDiscountForAssignment(tx, a); err != nil {
			return err
		}

		calc := CalculateDiscountAmount(a.StudentFeeAssignmentBaseAmount, dType, in.DiscountValue)

		existing, err := sumActiveDiscounts(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		if existing.Add(calc).GreaterThan(a.StudentFeeAssignmentBaseAmount) {
			return fiber.NewError(fiber.StatusBadRequest, "total discount would exceed the base fee amount")
		}

		d = model.StudentFeeDiscount{
			StudentFeeDiscountTenantID:         tenantID,
			StudentFeeDiscountAssignmentID:     a.StudentFeeAssignmentID,
			StudentFeeDiscountAcademicYearID:   a.StudentFeeAssignmentAcademicYearID,
			StudentFeeDiscountName:             strings.TrimSpace(in.DiscountName),
			StudentFeeDiscountCategory:         dCategory,
			StudentFeeDiscountType:             dType,
			StudentFeeDiscountValue:            in.DiscountValue,
			StudentFeeDiscountCalculatedAmount: calc,
			StudentFeeDiscountReason:           in.Reason,
			StudentFeeDiscountApprovedBy:       changedBy,
			StudentFeeDiscountIsActive:         true,
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}

		amounts, err := activeDiscountAmounts(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		paid, err := sumSuccessfulPayments(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		oldSnap, newSnap, err := applyRecalc(tx, a, Recalculate(RecalcInput{
			BaseAmount:      a.StudentFeeAssignmentBaseAmount,
			ActiveDiscounts: amounts,
			TotalPaid:       paid,
		}))
		if err != nil {
			return err
		}

		if err := audit.Log(tx, tenantID, "student_fee_discounts", d.StudentFeeDiscountID,
			auditmodel.FeeAuditActionCreate, nil,
			map[string]any{
				"name":              d.StudentFeeDiscountName,
				"category":          string(d.StudentFeeDiscountCategory),
				"type":              string(d.StudentFeeDiscountType),
				"value":             d.StudentFeeDiscountValue.String(),
				"calculated_amount": d.StudentFeeDiscountCalculatedAmount.String(),
			}, changedBy); err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "student_fee_assignments", a.StudentFeeAssignmentID,
			auditmodel.FeeAuditActionUpdate, oldSnap, newSnap, changedBy)
	})
	if err != nil {
		return nil, nil, err
	}
	return &d, a, nil
}

// DeactivateDiscount mematikan satu diskon (soft) lalu recalc parent-nya.
func DeactivateDiscount(
	db *gorm.DB,
	tenantID, discountID uuid.UUID,
	changedBy *uuid.UUID,
) (*model.StudentFeeDiscount, *model.StudentFeeAssignment, error) {
	var (
		d model.StudentFeeDiscount
		a *model.StudentFeeAssignment
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("student_fee_discount_id = ?", discountID).
			Where("student_fee_discount_tenant_id = ?", tenantID).
			First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "discount not found")
			}
			return err
		}

		var err error
		a, err = lockAssignment(tx, tenantID, d.StudentFeeDiscountAssignmentID)
		if err != nil {
			return err
		}

		// Cek is_active baru sah SETELAH lock parent; dua deactivate
		// berbarengan antre di lock, yang kalah mendarat di guard ini.
		res := tx.Model(&model.StudentFeeDiscount{}).
			Where("student_fee_discount_id = ? AND student_fee_discount_is_active = TRUE", d.StudentFeeDiscountID).
			Update("student_fee_discount_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "discount is already inactive")
		}
		d.StudentFeeDiscountIsActive = false

		amounts, err := activeDiscountAmounts(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		paid, err := sumSuccessfulPayments(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		oldSnap, newSnap, err := applyRecalc(tx, a, Recalculate(RecalcInput{
			BaseAmount:      a.StudentFeeAssignmentBaseAmount,
			ActiveDiscounts: amounts,
			TotalPaid:       paid,
		}))
		if err != nil {
			return err
		}

		if err := audit.Log(tx, tenantID, "student_fee_discounts", d.StudentFeeDiscountID,
			auditmodel.FeeAuditActionDeactivate,
			map[string]any{"is_active": true},
			map[string]any{"is_active": false},
			changedBy); err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "student_fee_assignments", a.StudentFeeAssignmentID,
			auditmodel.FeeAuditActionUpdate, oldSnap, newSnap, changedBy)
	})
	if err != nil {
		return nil, nil, err
	}
	return &d, a, nil
}
