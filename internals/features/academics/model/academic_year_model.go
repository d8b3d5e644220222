package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — status academic year
============================== */

type AcademicYearStatus string

const (
	AcademicYearStatusActive AcademicYearStatus = "ACTIVE"
	AcademicYearStatusClosed AcademicYearStatus = "CLOSED"
)

/* ==============================
   MODEL academic_years
   Tahun CLOSED bersifat read-only untuk seluruh ledger fee.
============================== */

type AcademicYear struct {
	AcademicYearID       uuid.UUID          `json:"academic_year_id" gorm:"column:academic_year_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AcademicYearTenantID uuid.UUID          `json:"academic_year_tenant_id" gorm:"column:academic_year_tenant_id;type:uuid;not null;index"`
	AcademicYearName     string             `json:"academic_year_name" gorm:"column:academic_year_name;type:varchar(50);not null"` // contoh: "2025-2026"
	AcademicYearStartDate time.Time         `json:"academic_year_start_date" gorm:"column:academic_year_start_date;type:date;not null"`
	AcademicYearEndDate  time.Time          `json:"academic_year_end_date" gorm:"column:academic_year_end_date;type:date;not null"`
	AcademicYearIsCurrent bool              `json:"academic_year_is_current" gorm:"column:academic_year_is_current;type:boolean;not null;default:false"`
	AcademicYearStatus   AcademicYearStatus `json:"academic_year_status" gorm:"column:academic_year_status;type:varchar(20);not null;default:'ACTIVE';index"`

	AcademicYearClosedAt *time.Time `json:"academic_year_closed_at,omitempty" gorm:"column:academic_year_closed_at;type:timestamptz"`
	AcademicYearClosedBy *uuid.UUID `json:"academic_year_closed_by,omitempty" gorm:"column:academic_year_closed_by;type:uuid"`

	AcademicYearCreatedAt time.Time      `json:"academic_year_created_at" gorm:"column:academic_year_created_at;type:timestamptz;not null;autoCreateTime"`
	AcademicYearUpdatedAt time.Time      `json:"academic_year_updated_at" gorm:"column:academic_year_updated_at;type:timestamptz;not null;autoUpdateTime"`
	AcademicYearDeletedAt gorm.DeletedAt `json:"-" gorm:"column:academic_year_deleted_at;type:timestamptz;index"`
}

func (AcademicYear) TableName() string { return "academic_years" }

// IsWritable: gate untuk semua operasi tulis fee ledger.
func (m *AcademicYear) IsWritable() bool {
	return m.AcademicYearStatus == AcademicYearStatusActive
}
