package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/academics/service"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	audit "schoolku_backend/internals/features/finance/fee_audit/service"
	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Payment service — ledger append-only. Transaksi yang sudah
   tercatat tidak pernah diubah; koreksi = entri baru.
========================================================= */

// RecordPayment mencatat pembayaran success terhadap satu assignment.
// Overpayment ditolak: amount harus <= sisa tagihan saat ini.
func RecordPayment(
	db *gorm.DB,
	tenantID, assignmentID uuid.UUID,
	in dto.PaymentCreateDTO,
	collectedBy *uuid.UUID,
) (*model.PaymentTransaction, *model.StudentFeeAssignment, error) {
	if !in.Amount.IsPositive() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "payment amount must be positive")
	}
	mode := model.PaymentMode(strings.ToUpper(strings.TrimSpace(in.PaymentMode)))
	if !mode.Valid() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid payment mode")
	}

	paidAt := time.Now().UTC()
	if in.PaidAt != nil {
		paidAt = in.PaidAt.UTC()
	}

	var (
		p model.PaymentTransaction
		a *model.StudentFeeAssignment
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		a, err = lockAssignment(tx, tenantID, assignmentID)
		if err != nil {
			return err
		}

		paid, err := sumSuccessfulPayments(tx, a.StudentFeeAssignmentID)
		if err != nil {
			return err
		}
		balance := a.StudentFeeAssignmentFinalAmount.Sub(paid)
		if in.Amount.GreaterThan(balance) {
			return fiber.NewError(fiber.StatusBadRequest, "payment exceeds outstanding balance")
		}

		p = model.PaymentTransaction{
			PaymentTransactionTenantID:        tenantID,
			PaymentTransactionAssignmentID:    a.StudentFeeAssignmentID,
			PaymentTransactionAcademicYearID:  a.StudentFeeAssignmentAcademicYearID,
			PaymentTransactionAmount:          in.Amount,
			PaymentTransactionMode:            mode,
			PaymentTransactionStatus:          model.PaymentTxnSuccess,
			PaymentTransactionReferenceNumber: in.TransactionReference,
			PaymentTransactionPaidAt:          paidAt,
			PaymentTransactionCollectedBy:     collectedBy,
			PaymentTransactionNotes:           in.Notes,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		oldStatus := a.StudentFeeAssignmentStatus

		newTotal := paid.Add(in.Amount)
		newStatus := model.FeeStatusPartial
		if newTotal.GreaterThanOrEqual(a.StudentFeeAssignmentFinalAmount) {
			newStatus = model.FeeStatusPaid
		}
		if err := tx.Model(&model.StudentFeeAssignment{}).
			Where("student_fee_assignment_id = ?", a.StudentFeeAssignmentID).
			Update("student_fee_assignment_status", newStatus).Error; err != nil {
			return err
		}
		a.StudentFeeAssignmentStatus = newStatus

		if err := audit.Log(tx, tenantID, "payment_transactions", p.PaymentTransactionID,
			auditmodel.FeeAuditActionCreate, nil,
			map[string]any{
				"amount":     p.PaymentTransactionAmount.String(),
				"mode":       string(p.PaymentTransactionMode),
				"old_status": string(oldStatus),
				"new_status": string(newStatus),
			}, collectedBy); err != nil {
			return err
		}
		return audit.Log(tx, tenantID, "student_fee_assignments", a.StudentFeeAssignmentID,
			auditmodel.FeeAuditActionUpdate,
			map[string]any{"status": string(oldStatus)},
			map[string]any{"status": string(newStatus)},
			collectedBy)
	})
	if err != nil {
		return nil, nil, err
	}
	return &p, a, nil
}

// GetPaymentHistory: pembayaran success milik satu siswa, terbaru dulu.
func GetPaymentHistory(
	db *gorm.DB,
	tenantID, studentID uuid.UUID,
	academicYearID *uuid.UUID,
) ([]dto.PaymentHistoryRow, error) {
	if err := academics.StudentExists(db, tenantID, studentID); err != nil {
		return nil, err
	}

	q := db.Table("payment_transactions AS pt").
		Select(`pt.payment_transaction_id,
			pt.payment_transaction_assignment_id AS assignment_id,
			COALESCE(fc.fee_component_name, sfa.student_fee_assignment_custom_name) AS fee_name,
			pt.payment_transaction_amount AS amount,
			pt.payment_transaction_mode AS payment_mode,
			pt.payment_transaction_reference_number AS reference_number,
			pt.payment_transaction_paid_at AS paid_at,
			pt.payment_transaction_collected_by AS collected_by`).
		Joins("JOIN student_fee_assignments AS sfa ON sfa.student_fee_assignment_id = pt.payment_transaction_assignment_id").
		Joins("LEFT JOIN class_fee_structures AS cfs ON cfs.class_fee_structure_id = sfa.student_fee_assignment_class_fee_structure_id").
		Joins("LEFT JOIN fee_components AS fc ON fc.fee_component_id = cfs.class_fee_structure_fee_component_id").
		Where("pt.payment_transaction_tenant_id = ?", tenantID).
		Where("pt.payment_transaction_status = 'success'").
		Where("sfa.student_fee_assignment_student_id = ?", studentID)

	if academicYearID != nil {
		q = q.Where("sfa.student_fee_assignment_academic_year_id = ?", *academicYearID)
	}

	var rows []dto.PaymentHistoryRow
	if err := q.Order("pt.payment_transaction_paid_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
