package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/academics/model"
)

/* =========================================================
   Lookup service — dipakai core fee sebagai kolaborator
   eksternal (cek validitas year/class/student/enrollment).
========================================================= */

// GetWritableAcademicYear memuat tahun ajaran milik tenant dan memastikan
// statusnya masih ACTIVE (CLOSED = seluruh ledger read-only).
func GetWritableAcademicYear(db *gorm.DB, tenantID, academicYearID uuid.UUID) (*model.AcademicYear, error) {
	var ay model.AcademicYear
	if err := db.
		Where("academic_year_id = ? AND academic_year_tenant_id = ?", academicYearID, tenantID).
		First(&ay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid academic year")
		}
		return nil, err
	}
	if !ay.IsWritable() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic year is closed")
	}
	return &ay, nil
}

func GetAcademicYear(db *gorm.DB, tenantID, academicYearID uuid.UUID) (*model.AcademicYear, error) {
	var ay model.AcademicYear
	if err := db.
		Where("academic_year_id = ? AND academic_year_tenant_id = ?", academicYearID, tenantID).
		First(&ay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid academic year")
		}
		return nil, err
	}
	return &ay, nil
}

func ClassExists(db *gorm.DB, tenantID, classID uuid.UUID) error {
	var n int64
	if err := db.Model(&model.SchoolClass{}).
		Where("class_id = ? AND class_tenant_id = ?", classID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class")
	}
	return nil
}

func StudentExists(db *gorm.DB, tenantID, studentID uuid.UUID) error {
	var n int64
	if err := db.Model(&model.Student{}).
		Where("student_id = ? AND student_tenant_id = ?", studentID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student")
	}
	return nil
}

// CurrentEnrollment: record ACTIVE milik (student, year) — sumber class/section.
func CurrentEnrollment(db *gorm.DB, tenantID, studentID, academicYearID uuid.UUID) (*model.StudentAcademicRecord, error) {
	var rec model.StudentAcademicRecord
	if err := db.
		Where("student_academic_record_tenant_id = ?", tenantID).
		Where("student_academic_record_student_id = ?", studentID).
		Where("student_academic_record_academic_year_id = ?", academicYearID).
		Where("student_academic_record_status = ?", model.AcademicRecordStatusActive).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "student not enrolled for this academic year")
		}
		return nil, err
	}
	return &rec, nil
}
