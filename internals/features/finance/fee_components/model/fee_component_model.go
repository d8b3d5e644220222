package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — kategori komponen
============================== */

type FeeComponentCategory string

const (
	FeeComponentCategoryAcademic  FeeComponentCategory = "ACADEMIC"
	FeeComponentCategoryTransport FeeComponentCategory = "TRANSPORT"
	FeeComponentCategoryHostel    FeeComponentCategory = "HOSTEL"
	FeeComponentCategoryOther     FeeComponentCategory = "OTHER"
)

func (c FeeComponentCategory) Valid() bool {
	switch c {
	case FeeComponentCategoryAcademic, FeeComponentCategoryTransport,
		FeeComponentCategoryHostel, FeeComponentCategoryOther:
		return true
	}
	return false
}

/* ==============================
   MODEL fee_components
   Master item tagihan per tenant. Soft-deactivate lewat
   is_active; tidak pernah hard delete selama direferensikan.
============================== */

type FeeComponent struct {
	FeeComponentID       uuid.UUID `json:"fee_component_id" gorm:"column:fee_component_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FeeComponentTenantID uuid.UUID `json:"fee_component_tenant_id" gorm:"column:fee_component_tenant_id;type:uuid;not null;uniqueIndex:uniq_fee_component_code,priority:1"`

	FeeComponentName        string               `json:"fee_component_name" gorm:"column:fee_component_name;type:varchar(100);not null"`
	FeeComponentCode        string               `json:"fee_component_code" gorm:"column:fee_component_code;type:varchar(50);not null;uniqueIndex:uniq_fee_component_code,priority:2"` // selalu uppercase
	FeeComponentDescription *string              `json:"fee_component_description,omitempty" gorm:"column:fee_component_description;type:text"`
	FeeComponentCategory    FeeComponentCategory `json:"fee_component_category" gorm:"column:fee_component_category;type:varchar(20);not null;default:'OTHER'"`

	FeeComponentAllowDiscount      bool `json:"fee_component_allow_discount" gorm:"column:fee_component_allow_discount;type:boolean;not null"`
	FeeComponentIsMandatoryDefault bool `json:"fee_component_is_mandatory_default" gorm:"column:fee_component_is_mandatory_default;type:boolean;not null"`
	FeeComponentIsActive           bool `json:"fee_component_is_active" gorm:"column:fee_component_is_active;type:boolean;not null;default:true;index"`

	FeeComponentCreatedAt time.Time      `json:"fee_component_created_at" gorm:"column:fee_component_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeComponentUpdatedAt time.Time      `json:"fee_component_updated_at" gorm:"column:fee_component_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeComponentDeletedAt gorm.DeletedAt `json:"-" gorm:"column:fee_component_deleted_at;type:timestamptz;index"`
}

func (FeeComponent) TableName() string { return "fee_components" }
