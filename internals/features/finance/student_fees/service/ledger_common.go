package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Helper bersama ledger diskon/pembayaran.
   Semua mutasi memegang FOR UPDATE pada baris assignment
   supaya recalc terserialisasi per assignment.
========================================================= */

// lockAssignment memuat assignment aktif milik tenant dengan row lock.
// Mutasi konkuren pada assignment yang sama akan antre di sini.
func lockAssignment(tx *gorm.DB, tenantID, assignmentID uuid.UUID) (*model.StudentFeeAssignment, error) {
	var a model.StudentFeeAssignment
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_fee_assignment_id = ?", assignmentID).
		Where("student_fee_assignment_tenant_id = ?", tenantID).
		Where("student_fee_assignment_is_active = TRUE").
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee assignment not found")
		}
		return nil, err
	}
	return &a, nil
}

// sumActiveDiscounts membaca ulang ledger diskon di dalam tx (bukan dari
// field assignment) supaya tidak ada state basi yang ikut terhitung.
func sumActiveDiscounts(tx *gorm.DB, assignmentID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Raw(`
		SELECT COALESCE(SUM(student_fee_discount_calculated_amount), 0)
		FROM student_fee_discounts
		WHERE student_fee_discount_assignment_id = ?
		  AND student_fee_discount_is_active = TRUE
		  AND student_fee_discount_deleted_at IS NULL`, assignmentID).
		Scan(&total).Error
	return total, err
}

func sumSuccessfulPayments(tx *gorm.DB, assignmentID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Raw(`
		SELECT COALESCE(SUM(payment_transaction_amount), 0)
		FROM payment_transactions
		WHERE payment_transaction_assignment_id = ?
		  AND payment_transaction_status = 'success'`, assignmentID).
		Scan(&total).Error
	return total, err
}

// activeDiscountAmounts: daftar calculated_amount diskon aktif, untuk
// input recalc.
func activeDiscountAmounts(tx *gorm.DB, assignmentID uuid.UUID) ([]decimal.Decimal, error) {
	var rows []model.StudentFeeDiscount
	if err := tx.
		Where("student_fee_discount_assignment_id = ?", assignmentID).
		Where("student_fee_discount_is_active = TRUE").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]decimal.Decimal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.StudentFeeDiscountCalculatedAmount)
	}
	return out, nil
}

// applyRecalc menulis hasil recalc ke assignment dan mengembalikan
// snapshot old/new untuk audit.
func applyRecalc(tx *gorm.DB, a *model.StudentFeeAssignment, res RecalcResult) (oldSnap, newSnap map[string]any, err error) {
	oldSnap = map[string]any{
		"total_discount_amount": a.StudentFeeAssignmentTotalDiscountAmount.String(),
		"final_amount":          a.StudentFeeAssignmentFinalAmount.String(),
		"status":                string(a.StudentFeeAssignmentStatus),
	}

	a.StudentFeeAssignmentTotalDiscountAmount = res.TotalDiscount
	a.StudentFeeAssignmentFinalAmount = res.FinalAmount
	a.StudentFeeAssignmentStatus = res.Status

	if err = tx.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_id = ?", a.StudentFeeAssignmentID).
		Updates(map[string]any{
			"student_fee_assignment_total_discount_amount": res.TotalDiscount,
			"student_fee_assignment_final_amount":          res.FinalAmount,
			"student_fee_assignment_status":                res.Status,
		}).Error; err != nil {
		return nil, nil, err
	}

	newSnap = map[string]any{
		"total_discount_amount": res.TotalDiscount.String(),
		"final_amount":          res.FinalAmount.String(),
		"status":                string(res.Status),
	}
	return oldSnap, newSnap, nil
}
