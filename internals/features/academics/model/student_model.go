package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   MODEL students
   Permukaan identitas minimal; profil lengkap milik layanan users.
============================== */

type Student struct {
	StudentID       uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentTenantID uuid.UUID `json:"student_tenant_id" gorm:"column:student_tenant_id;type:uuid;not null;index"`
	StudentFullName string    `json:"student_full_name" gorm:"column:student_full_name;type:varchar(255);not null"`
	StudentIsActive bool      `json:"student_is_active" gorm:"column:student_is_active;type:boolean;not null;default:true"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:student_deleted_at;type:timestamptz;index"`
}

func (Student) TableName() string { return "students" }

/* ==============================
   ENUM — status enrollment
============================== */

type AcademicRecordStatus string

const (
	AcademicRecordStatusActive   AcademicRecordStatus = "ACTIVE"
	AcademicRecordStatusPromoted AcademicRecordStatus = "PROMOTED"
	AcademicRecordStatusLeft     AcademicRecordStatus = "LEFT"
)

/* ==============================
   MODEL student_academic_records
   Satu record per (student, academic_year); promosi membuat record baru.
============================== */

type StudentAcademicRecord struct {
	StudentAcademicRecordID             uuid.UUID            `json:"student_academic_record_id" gorm:"column:student_academic_record_id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentAcademicRecordTenantID       uuid.UUID            `json:"student_academic_record_tenant_id" gorm:"column:student_academic_record_tenant_id;type:uuid;not null;index"`
	StudentAcademicRecordStudentID      uuid.UUID            `json:"student_academic_record_student_id" gorm:"column:student_academic_record_student_id;type:uuid;not null;uniqueIndex:uniq_student_year,priority:1"`
	StudentAcademicRecordAcademicYearID uuid.UUID            `json:"student_academic_record_academic_year_id" gorm:"column:student_academic_record_academic_year_id;type:uuid;not null;uniqueIndex:uniq_student_year,priority:2"`
	StudentAcademicRecordClassID        uuid.UUID            `json:"student_academic_record_class_id" gorm:"column:student_academic_record_class_id;type:uuid;not null;index"`
	StudentAcademicRecordSectionID      uuid.UUID            `json:"student_academic_record_section_id" gorm:"column:student_academic_record_section_id;type:uuid;not null"`
	StudentAcademicRecordRollNumber     *string              `json:"student_academic_record_roll_number,omitempty" gorm:"column:student_academic_record_roll_number;type:varchar(50)"`
	StudentAcademicRecordStatus         AcademicRecordStatus `json:"student_academic_record_status" gorm:"column:student_academic_record_status;type:varchar(20);not null;default:'ACTIVE';index"`

	StudentAcademicRecordCreatedAt time.Time      `json:"student_academic_record_created_at" gorm:"column:student_academic_record_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentAcademicRecordDeletedAt gorm.DeletedAt `json:"-" gorm:"column:student_academic_record_deleted_at;type:timestamptz;index"`
}

func (StudentAcademicRecord) TableName() string { return "student_academic_records" }
