package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/academics/service"
	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Report service — read-only; tidak pernah mengubah state.
========================================================= */

// GetStudentFees: assignment aktif satu siswa dengan field display hasil
// join (nama komponen untuk TEMPLATE, custom_name untuk CUSTOM).
func GetStudentFees(
	db *gorm.DB,
	tenantID, studentID uuid.UUID,
	academicYearID *uuid.UUID,
) ([]dto.StudentFeeRow, error) {
	if err := academics.StudentExists(db, tenantID, studentID); err != nil {
		return nil, err
	}

	q := db.Table("student_fee_assignments AS sfa").
		Select(`sfa.student_fee_assignment_id,
			sfa.student_fee_assignment_source_type AS source_type,
			COALESCE(fc.fee_component_name, sfa.student_fee_assignment_custom_name) AS fee_name,
			fc.fee_component_code,
			sc.class_name,
			sfa.student_fee_assignment_base_amount AS base_amount,
			sfa.student_fee_assignment_total_discount_amount AS total_discount_amount,
			sfa.student_fee_assignment_final_amount AS final_amount,
			sfa.student_fee_assignment_status AS status,
			sfa.student_fee_assignment_is_mandatory AS is_mandatory,
			sfa.student_fee_assignment_due_date AS due_date`).
		Joins("LEFT JOIN class_fee_structures AS cfs ON cfs.class_fee_structure_id = sfa.student_fee_assignment_class_fee_structure_id").
		Joins("LEFT JOIN fee_components AS fc ON fc.fee_component_id = cfs.class_fee_structure_fee_component_id").
		Joins("LEFT JOIN school_classes AS sc ON sc.class_id = cfs.class_fee_structure_class_id").
		Where("sfa.student_fee_assignment_tenant_id = ?", tenantID).
		Where("sfa.student_fee_assignment_student_id = ?", studentID).
		Where("sfa.student_fee_assignment_is_active = TRUE").
		Where("sfa.student_fee_assignment_deleted_at IS NULL")

	if academicYearID != nil {
		q = q.Where("sfa.student_fee_assignment_academic_year_id = ?", *academicYearID)
	}

	var rows []dto.StudentFeeRow
	if err := q.Order("sfa.student_fee_assignment_created_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetFeeReport: satu baris per assignment aktif untuk satu tahun ajaran,
// lengkap dengan identitas siswa, kelas/seksi, akumulasi bayar, dan sisa.
func GetFeeReport(
	db *gorm.DB,
	tenantID, academicYearID uuid.UUID,
	classID *uuid.UUID,
	statusFilter *string,
) ([]dto.FeeReportRow, error) {
	if _, err := academics.GetAcademicYear(db, tenantID, academicYearID); err != nil {
		return nil, err
	}
	if statusFilter != nil {
		s := model.FeePaymentStatus(strings.ToLower(strings.TrimSpace(*statusFilter)))
		switch s {
		case model.FeeStatusUnpaid, model.FeeStatusPartial, model.FeeStatusPaid:
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid status filter")
		}
	}

	q := db.Table("student_fee_assignments AS sfa").
		Select(`st.student_id,
			st.student_full_name AS student_name,
			sc.class_name,
			sec.section_name,
			sfa.student_fee_assignment_id,
			COALESCE(fc.fee_component_name, sfa.student_fee_assignment_custom_name) AS fee_name,
			sfa.student_fee_assignment_base_amount AS base_amount,
			sfa.student_fee_assignment_total_discount_amount AS total_discount_amount,
			sfa.student_fee_assignment_final_amount AS final_amount,
			COALESCE(paid.total, 0) AS amount_paid,
			sfa.student_fee_assignment_final_amount - COALESCE(paid.total, 0) AS balance,
			sfa.student_fee_assignment_status AS status`).
		Joins("JOIN students AS st ON st.student_id = sfa.student_fee_assignment_student_id").
		Joins(`LEFT JOIN student_academic_records AS sar
			ON sar.student_academic_record_student_id = sfa.student_fee_assignment_student_id
			AND sar.student_academic_record_academic_year_id = sfa.student_fee_assignment_academic_year_id
			AND sar.student_academic_record_status = 'ACTIVE'
			AND sar.student_academic_record_deleted_at IS NULL`).
		Joins("LEFT JOIN school_classes AS sc ON sc.class_id = sar.student_academic_record_class_id").
		Joins("LEFT JOIN sections AS sec ON sec.section_id = sar.student_academic_record_section_id").
		Joins("LEFT JOIN class_fee_structures AS cfs ON cfs.class_fee_structure_id = sfa.student_fee_assignment_class_fee_structure_id").
		Joins("LEFT JOIN fee_components AS fc ON fc.fee_component_id = cfs.class_fee_structure_fee_component_id").
		Joins(`LEFT JOIN (
			SELECT payment_transaction_assignment_id, SUM(payment_transaction_amount) AS total
			FROM payment_transactions
			WHERE payment_transaction_status = 'success'
			GROUP BY payment_transaction_assignment_id
		) AS paid ON paid.payment_transaction_assignment_id = sfa.student_fee_assignment_id`).
		Where("sfa.student_fee_assignment_tenant_id = ?", tenantID).
		Where("sfa.student_fee_assignment_academic_year_id = ?", academicYearID).
		Where("sfa.student_fee_assignment_is_active = TRUE").
		Where("sfa.student_fee_assignment_deleted_at IS NULL")

	if classID != nil {
		q = q.Where("sar.student_academic_record_class_id = ?", *classID)
	}
	if statusFilter != nil {
		q = q.Where("sfa.student_fee_assignment_status = ?", strings.ToLower(strings.TrimSpace(*statusFilter)))
	}

	var rows []dto.FeeReportRow
	if err := q.
		Order("sc.class_display_order ASC NULLS LAST, sc.class_name ASC, st.student_full_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
