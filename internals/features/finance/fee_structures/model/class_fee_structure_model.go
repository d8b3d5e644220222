package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — frekuensi tagihan
============================== */

type FeeFrequency string

const (
	FeeFrequencyOneTime  FeeFrequency = "one_time"
	FeeFrequencyMonthly  FeeFrequency = "monthly"
	FeeFrequencyTermWise FeeFrequency = "term_wise"
)

func (f FeeFrequency) Valid() bool {
	switch f {
	case FeeFrequencyOneTime, FeeFrequencyMonthly, FeeFrequencyTermWise:
		return true
	}
	return false
}

/* ==============================
   MODEL class_fee_structures
   Template biaya per (tahun ajaran, kelas, komponen).
   Satu kombinasi hanya boleh punya satu baris aktif.
============================== */

type ClassFeeStructure struct {
	ClassFeeStructureID       uuid.UUID `json:"class_fee_structure_id" gorm:"column:class_fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassFeeStructureTenantID uuid.UUID `json:"class_fee_structure_tenant_id" gorm:"column:class_fee_structure_tenant_id;type:uuid;not null;index"`

	ClassFeeStructureAcademicYearID uuid.UUID `json:"class_fee_structure_academic_year_id" gorm:"column:class_fee_structure_academic_year_id;type:uuid;not null;uniqueIndex:uniq_cfs_year_class_component,priority:1"`
	ClassFeeStructureClassID        uuid.UUID `json:"class_fee_structure_class_id" gorm:"column:class_fee_structure_class_id;type:uuid;not null;uniqueIndex:uniq_cfs_year_class_component,priority:2"`
	ClassFeeStructureFeeComponentID uuid.UUID `json:"class_fee_structure_fee_component_id" gorm:"column:class_fee_structure_fee_component_id;type:uuid;not null;uniqueIndex:uniq_cfs_year_class_component,priority:3"`

	ClassFeeStructureAmount      decimal.Decimal `json:"class_fee_structure_amount" gorm:"column:class_fee_structure_amount;type:numeric(12,2);not null"`
	ClassFeeStructureFrequency   FeeFrequency    `json:"class_fee_structure_frequency" gorm:"column:class_fee_structure_frequency;type:varchar(20);not null;default:'one_time'"`
	ClassFeeStructureIsMandatory bool            `json:"class_fee_structure_is_mandatory" gorm:"column:class_fee_structure_is_mandatory;type:boolean;not null"`
	ClassFeeStructureIsActive    bool            `json:"class_fee_structure_is_active" gorm:"column:class_fee_structure_is_active;type:boolean;not null;default:true;index"`
	ClassFeeStructureDueDate     *time.Time      `json:"class_fee_structure_due_date,omitempty" gorm:"column:class_fee_structure_due_date;type:date"`

	ClassFeeStructureCreatedAt time.Time      `json:"class_fee_structure_created_at" gorm:"column:class_fee_structure_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassFeeStructureUpdatedAt time.Time      `json:"class_fee_structure_updated_at" gorm:"column:class_fee_structure_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassFeeStructureDeletedAt gorm.DeletedAt `json:"-" gorm:"column:class_fee_structure_deleted_at;type:timestamptz;index"`
}

func (ClassFeeStructure) TableName() string { return "class_fee_structures" }
