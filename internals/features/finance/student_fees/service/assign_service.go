package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academics "schoolku_backend/internals/features/academics/service"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	audit "schoolku_backend/internals/features/finance/fee_audit/service"
	structmodel "schoolku_backend/internals/features/finance/fee_structures/model"
	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Assignment service — snapshot template ke tagihan siswa.
   base_amount dibekukan di sini; setelahnya hanya bergerak
   lewat ledger diskon/pembayaran.
========================================================= */

func assignmentAuditSnapshot(a model.StudentFeeAssignment) map[string]any {
	snap := map[string]any{
		"source_type":  string(a.StudentFeeAssignmentSourceType),
		"base_amount":  a.StudentFeeAssignmentBaseAmount.String(),
		"final_amount": a.StudentFeeAssignmentFinalAmount.String(),
		"status":       string(a.StudentFeeAssignmentStatus),
	}
	if a.StudentFeeAssignmentClassFeeStructureID != nil {
		snap["class_fee_structure_id"] = a.StudentFeeAssignmentClassFeeStructureID.String()
	}
	if a.StudentFeeAssignmentCustomName != nil {
		snap["custom_name"] = *a.StudentFeeAssignmentCustomName
	}
	return snap
}

// activeTemplateAssignmentExists: sudah ada assignment aktif untuk
// (student, year, template) yang sama? Dipakai untuk skip idempoten.
func activeTemplateAssignmentExists(tx *gorm.DB, tenantID, studentID, academicYearID, structureID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_tenant_id = ?", tenantID).
		Where("student_fee_assignment_student_id = ?", studentID).
		Where("student_fee_assignment_academic_year_id = ?", academicYearID).
		Where("student_fee_assignment_source_type = ?", model.FeeSourceTemplate).
		Where("student_fee_assignment_class_fee_structure_id = ?", structureID).
		Where("student_fee_assignment_is_active = TRUE").
		Count(&n).Error
	return n > 0, err
}

// AssignTemplateFees membuat snapshot untuk semua template WAJIB kelas
// siswa (skip diam-diam kalau sudah ada), plus template OPSIONAL yang
// dipilih eksplisit. Satu panggilan = satu transaksi; gagal validasi
// berarti tidak ada satu pun baris yang tertulis.
func AssignTemplateFees(
	db *gorm.DB,
	tenantID, studentID uuid.UUID,
	in dto.AssignTemplateFeesDTO,
	changedBy *uuid.UUID,
) (*dto.AssignTemplateFeesResult, error) {
	if _, err := academics.GetWritableAcademicYear(db, tenantID, in.AcademicYearID); err != nil {
		return nil, err
	}
	if err := academics.StudentExists(db, tenantID, studentID); err != nil {
		return nil, err
	}
	enrollment, err := academics.CurrentEnrollment(db, tenantID, studentID, in.AcademicYearID)
	if err != nil {
		return nil, err
	}

	var templates []structmodel.ClassFeeStructure
	if err := db.
		Where("class_fee_structure_tenant_id = ?", tenantID).
		Where("class_fee_structure_academic_year_id = ?", in.AcademicYearID).
		Where("class_fee_structure_class_id = ?", enrollment.StudentAcademicRecordClassID).
		Where("class_fee_structure_is_active = TRUE").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "no fee structures defined for this class and academic year")
	}

	byID := make(map[uuid.UUID]structmodel.ClassFeeStructure, len(templates))
	for _, t := range templates {
		byID[t.ClassFeeStructureID] = t
	}

	// Validasi seleksi opsional SEBELUM transaksi dimulai.
	for _, sel := range in.OptionalSelections {
		t, ok := byID[sel.ClassFeeStructureID]
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "selected fee structure does not belong to this class and academic year")
		}
		if t.ClassFeeStructureIsMandatory {
			return nil, fiber.NewError(fiber.StatusBadRequest, "mandatory fees are assigned automatically and cannot be selected")
		}
		if sel.OverrideAmount != nil && sel.OverrideAmount.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "override amount must not be negative")
		}
	}

	result := &dto.AssignTemplateFeesResult{Assignments: []dto.StudentFeeAssignmentResponse{}}

	err = db.Transaction(func(tx *gorm.DB) error {
		createOne := func(t structmodel.ClassFeeStructure, sel *dto.OptionalFeeSelectionDTO) error {
			exists, err := activeTemplateAssignmentExists(tx, tenantID, studentID, in.AcademicYearID, t.ClassFeeStructureID)
			if err != nil {
				return err
			}
			if exists {
				result.SkippedCount++
				return nil
			}

			base := t.ClassFeeStructureAmount
			if sel != nil && sel.OverrideAmount != nil {
				base = *sel.OverrideAmount
			}
			structureID := t.ClassFeeStructureID
			a := model.StudentFeeAssignment{
				StudentFeeAssignmentTenantID:            tenantID,
				StudentFeeAssignmentStudentID:           studentID,
				StudentFeeAssignmentAcademicYearID:      in.AcademicYearID,
				StudentFeeAssignmentSourceType:          model.FeeSourceTemplate,
				StudentFeeAssignmentClassFeeStructureID: &structureID,
				StudentFeeAssignmentBaseAmount:          base,
				StudentFeeAssignmentFinalAmount:         base,
				StudentFeeAssignmentStatus:              model.FeeStatusUnpaid,
				StudentFeeAssignmentIsMandatory:         t.ClassFeeStructureIsMandatory,
				StudentFeeAssignmentDueDate:             t.ClassFeeStructureDueDate,
				StudentFeeAssignmentIsActive:            true,
			}
			// Index unik parsial jadi penjaga terakhir saat dua request
			// assign berbarengan; ON CONFLICT DO NOTHING mengubah tabrakan
			// jadi skip tanpa membatalkan transaksi.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&a)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.SkippedCount++
				return nil
			}
			if err := audit.Log(tx, tenantID, "student_fee_assignments", a.StudentFeeAssignmentID,
				auditmodel.FeeAuditActionCreate, nil, assignmentAuditSnapshot(a), changedBy); err != nil {
				return err
			}
			result.AssignedCount++
			result.Assignments = append(result.Assignments, dto.ToStudentFeeAssignmentResponse(a))
			return nil
		}

		for _, t := range templates {
			if !t.ClassFeeStructureIsMandatory {
				continue
			}
			if err := createOne(t, nil); err != nil {
				return err
			}
		}
		for i := range in.OptionalSelections {
			sel := in.OptionalSelections[i]
			if err := createOne(byID[sel.ClassFeeStructureID], &sel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddCustomFee membuat assignment CUSTOM yang tidak terikat template.
func AddCustomFee(
	db *gorm.DB,
	tenantID, studentID uuid.UUID,
	in dto.CustomFeeCreateDTO,
	changedBy *uuid.UUID,
) (*model.StudentFeeAssignment, error) {
	if in.Amount.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}
	if _, err := academics.GetWritableAcademicYear(db, tenantID, in.AcademicYearID); err != nil {
		return nil, err
	}
	if err := academics.StudentExists(db, tenantID, studentID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.CustomName)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "custom_name is required")
	}

	a := model.StudentFeeAssignment{
		StudentFeeAssignmentTenantID:       tenantID,
		StudentFeeAssignmentStudentID:      studentID,
		StudentFeeAssignmentAcademicYearID: in.AcademicYearID,
		StudentFeeAssignmentSourceType:     model.FeeSourceCustom,
		StudentFeeAssignmentCustomName:     &name,
		StudentFeeAssignmentBaseAmount:     in.Amount,
		StudentFeeAssignmentFinalAmount:    in.Amount,
		StudentFeeAssignmentStatus:         model.FeeStatusUnpaid,
		StudentFeeAssignmentIsMandatory:    false,
		StudentFeeAssignmentDueDate:        in.DueDate,
		StudentFeeAssignmentIsActive:       true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		snap := assignmentAuditSnapshot(a)
		if in.Reason != nil {
			snap["reason"] = *in.Reason
		}
		return audit.Log(tx, tenantID, "student_fee_assignments", a.StudentFeeAssignmentID,
			auditmodel.FeeAuditActionCreate, nil, snap, changedBy)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
