package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — sumber & status assignment
============================== */

type FeeSourceType string

const (
	FeeSourceTemplate FeeSourceType = "TEMPLATE"
	FeeSourceCustom   FeeSourceType = "CUSTOM"
)

type FeePaymentStatus string

const (
	FeeStatusUnpaid  FeePaymentStatus = "unpaid"
	FeeStatusPartial FeePaymentStatus = "partial"
	FeeStatusPaid    FeePaymentStatus = "paid"
)

/* ==============================
   MODEL student_fee_assignments
   Snapshot tagihan per siswa. base_amount dibekukan saat assign;
   perubahan template sesudahnya TIDAK merambat ke sini.
   total_discount & final_amount dihitung ulang oleh recalc.
============================== */

type StudentFeeAssignment struct {
	StudentFeeAssignmentID       uuid.UUID `json:"student_fee_assignment_id" gorm:"column:student_fee_assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentFeeAssignmentTenantID uuid.UUID `json:"student_fee_assignment_tenant_id" gorm:"column:student_fee_assignment_tenant_id;type:uuid;not null;index"`

	StudentFeeAssignmentStudentID      uuid.UUID `json:"student_fee_assignment_student_id" gorm:"column:student_fee_assignment_student_id;type:uuid;not null;index:idx_sfa_student_year,priority:1;uniqueIndex:uniq_sfa_active_template,priority:1"`
	StudentFeeAssignmentAcademicYearID uuid.UUID `json:"student_fee_assignment_academic_year_id" gorm:"column:student_fee_assignment_academic_year_id;type:uuid;not null;index:idx_sfa_student_year,priority:2;uniqueIndex:uniq_sfa_active_template,priority:2"`

	StudentFeeAssignmentSourceType FeeSourceType `json:"student_fee_assignment_source_type" gorm:"column:student_fee_assignment_source_type;type:varchar(20);not null"`

	// Terisi untuk TEMPLATE; CUSTOM pakai custom_name.
	// Unique parsial: satu assignment aktif per (student, year, template).
	// Baris CUSTOM lolos karena structure_id NULL.
	StudentFeeAssignmentClassFeeStructureID *uuid.UUID `json:"student_fee_assignment_class_fee_structure_id,omitempty" gorm:"column:student_fee_assignment_class_fee_structure_id;type:uuid;index;uniqueIndex:uniq_sfa_active_template,priority:3,where:student_fee_assignment_is_active = TRUE"`
	StudentFeeAssignmentCustomName          *string    `json:"student_fee_assignment_custom_name,omitempty" gorm:"column:student_fee_assignment_custom_name;type:varchar(100)"`

	StudentFeeAssignmentBaseAmount          decimal.Decimal `json:"student_fee_assignment_base_amount" gorm:"column:student_fee_assignment_base_amount;type:numeric(12,2);not null"`
	StudentFeeAssignmentTotalDiscountAmount decimal.Decimal `json:"student_fee_assignment_total_discount_amount" gorm:"column:student_fee_assignment_total_discount_amount;type:numeric(12,2);not null;default:0"`
	StudentFeeAssignmentFinalAmount         decimal.Decimal `json:"student_fee_assignment_final_amount" gorm:"column:student_fee_assignment_final_amount;type:numeric(12,2);not null"`

	StudentFeeAssignmentStatus      FeePaymentStatus `json:"student_fee_assignment_status" gorm:"column:student_fee_assignment_status;type:varchar(10);not null;default:'unpaid';index"`
	// Tanpa default DB: false sah (fee opsional/custom) dan harus tertulis
	// apa adanya, tidak boleh di-skip sebagai zero value.
	StudentFeeAssignmentIsMandatory bool             `json:"student_fee_assignment_is_mandatory" gorm:"column:student_fee_assignment_is_mandatory;type:boolean;not null"`
	StudentFeeAssignmentDueDate     *time.Time       `json:"student_fee_assignment_due_date,omitempty" gorm:"column:student_fee_assignment_due_date;type:date"`
	StudentFeeAssignmentIsActive    bool             `json:"student_fee_assignment_is_active" gorm:"column:student_fee_assignment_is_active;type:boolean;not null;index"`

	StudentFeeAssignmentCreatedAt time.Time      `json:"student_fee_assignment_created_at" gorm:"column:student_fee_assignment_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentFeeAssignmentUpdatedAt time.Time      `json:"student_fee_assignment_updated_at" gorm:"column:student_fee_assignment_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentFeeAssignmentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:student_fee_assignment_deleted_at;type:timestamptz;index"`
}

func (StudentFeeAssignment) TableName() string { return "student_fee_assignments" }
