package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   MODEL school_classes
============================== */

type SchoolClass struct {
	ClassID           uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassTenantID     uuid.UUID `json:"class_tenant_id" gorm:"column:class_tenant_id;type:uuid;not null;index"`
	ClassName         string    `json:"class_name" gorm:"column:class_name;type:varchar(100);not null"`
	ClassDisplayOrder *int      `json:"class_display_order,omitempty" gorm:"column:class_display_order;type:int"`
	ClassIsActive     bool      `json:"class_is_active" gorm:"column:class_is_active;type:boolean;not null;default:true"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"-" gorm:"column:class_deleted_at;type:timestamptz;index"`
}

func (SchoolClass) TableName() string { return "school_classes" }

/* ==============================
   MODEL sections
============================== */

type Section struct {
	SectionID       uuid.UUID `json:"section_id" gorm:"column:section_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionTenantID uuid.UUID `json:"section_tenant_id" gorm:"column:section_tenant_id;type:uuid;not null;index"`
	SectionClassID  uuid.UUID `json:"section_class_id" gorm:"column:section_class_id;type:uuid;not null;index"`
	SectionName     string    `json:"section_name" gorm:"column:section_name;type:varchar(50);not null"`
	SectionIsActive bool      `json:"section_is_active" gorm:"column:section_is_active;type:boolean;not null;default:true"`

	SectionCreatedAt time.Time      `json:"section_created_at" gorm:"column:section_created_at;type:timestamptz;not null;autoCreateTime"`
	SectionUpdatedAt time.Time      `json:"section_updated_at" gorm:"column:section_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SectionDeletedAt gorm.DeletedAt `json:"-" gorm:"column:section_deleted_at;type:timestamptz;index"`
}

func (Section) TableName() string { return "sections" }
