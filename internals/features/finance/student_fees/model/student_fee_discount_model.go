package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — kategori & tipe diskon
============================== */

type FeeDiscountCategory string

const (
	FeeDiscountCategoryMaster FeeDiscountCategory = "MASTER"
	FeeDiscountCategoryCustom FeeDiscountCategory = "CUSTOM"
	FeeDiscountCategorySystem FeeDiscountCategory = "SYSTEM"
)

func (c FeeDiscountCategory) Valid() bool {
	switch c {
	case FeeDiscountCategoryMaster, FeeDiscountCategoryCustom, FeeDiscountCategorySystem:
		return true
	}
	return false
}

type FeeDiscountType string

const (
	FeeDiscountTypeFixed      FeeDiscountType = "fixed"
	FeeDiscountTypePercentage FeeDiscountType = "percentage"
)

/* ==============================
   MODEL student_fee_discounts
   Ledger diskon per assignment. calculated_discount_amount
   dibekukan saat apply (persentase dihitung dari base_amount).
   Nonaktif = soft, history tetap tersimpan.
============================== */

type StudentFeeDiscount struct {
	StudentFeeDiscountID       uuid.UUID `json:"student_fee_discount_id" gorm:"column:student_fee_discount_id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentFeeDiscountTenantID uuid.UUID `json:"student_fee_discount_tenant_id" gorm:"column:student_fee_discount_tenant_id;type:uuid;not null;index"`

	StudentFeeDiscountAssignmentID   uuid.UUID `json:"student_fee_discount_assignment_id" gorm:"column:student_fee_discount_assignment_id;type:uuid;not null;index"`
	StudentFeeDiscountAcademicYearID uuid.UUID `json:"student_fee_discount_academic_year_id" gorm:"column:student_fee_discount_academic_year_id;type:uuid;not null;index"`

	StudentFeeDiscountName     string              `json:"student_fee_discount_name" gorm:"column:student_fee_discount_name;type:varchar(100);not null"`
	StudentFeeDiscountCategory FeeDiscountCategory `json:"student_fee_discount_category" gorm:"column:student_fee_discount_category;type:varchar(20);not null"`
	StudentFeeDiscountType     FeeDiscountType     `json:"student_fee_discount_type" gorm:"column:student_fee_discount_type;type:varchar(20);not null"`

	StudentFeeDiscountValue            decimal.Decimal `json:"student_fee_discount_value" gorm:"column:student_fee_discount_value;type:numeric(12,2);not null"`
	StudentFeeDiscountCalculatedAmount decimal.Decimal `json:"student_fee_discount_calculated_amount" gorm:"column:student_fee_discount_calculated_amount;type:numeric(12,2);not null"`

	StudentFeeDiscountReason     *string    `json:"student_fee_discount_reason,omitempty" gorm:"column:student_fee_discount_reason;type:text"`
	StudentFeeDiscountApprovedBy *uuid.UUID `json:"student_fee_discount_approved_by,omitempty" gorm:"column:student_fee_discount_approved_by;type:uuid"`
	StudentFeeDiscountIsActive   bool       `json:"student_fee_discount_is_active" gorm:"column:student_fee_discount_is_active;type:boolean;not null;default:true;index"`

	StudentFeeDiscountCreatedAt time.Time      `json:"student_fee_discount_created_at" gorm:"column:student_fee_discount_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentFeeDiscountUpdatedAt time.Time      `json:"student_fee_discount_updated_at" gorm:"column:student_fee_discount_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentFeeDiscountDeletedAt gorm.DeletedAt `json:"-" gorm:"column:student_fee_discount_deleted_at;type:timestamptz;index"`
}

func (StudentFeeDiscount) TableName() string { return "student_fee_discounts" }
