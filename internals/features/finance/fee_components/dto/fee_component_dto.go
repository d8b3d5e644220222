package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fee_components/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEE COMPONENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeComponentCreateDTO struct {
	FeeComponentName               string  `json:"fee_component_name" validate:"required,max=100"`
	FeeComponentCode               string  `json:"fee_component_code" validate:"required,max=50"`
	FeeComponentDescription        *string `json:"fee_component_description,omitempty"`
	FeeComponentCategory           string  `json:"fee_component_category" validate:"required,oneof=ACADEMIC TRANSPORT HOSTEL OTHER"`
	FeeComponentAllowDiscount      *bool   `json:"fee_component_allow_discount,omitempty"`
	FeeComponentIsMandatoryDefault *bool   `json:"fee_component_is_mandatory_default,omitempty"`
}

// Update (partial) — code sengaja tidak bisa diganti setelah dibuat.
type FeeComponentUpdateDTO struct {
	FeeComponentName               *string `json:"fee_component_name,omitempty" validate:"omitempty,max=100"`
	FeeComponentDescription        *string `json:"fee_component_description,omitempty"`
	FeeComponentCategory           *string `json:"fee_component_category,omitempty" validate:"omitempty,oneof=ACADEMIC TRANSPORT HOSTEL OTHER"`
	FeeComponentAllowDiscount      *bool   `json:"fee_component_allow_discount,omitempty"`
	FeeComponentIsMandatoryDefault *bool   `json:"fee_component_is_mandatory_default,omitempty"`
}

type FeeComponentResponse struct {
	FeeComponentID                 uuid.UUID `json:"fee_component_id"`
	FeeComponentTenantID           uuid.UUID `json:"fee_component_tenant_id"`
	FeeComponentName               string    `json:"fee_component_name"`
	FeeComponentCode               string    `json:"fee_component_code"`
	FeeComponentDescription        *string   `json:"fee_component_description,omitempty"`
	FeeComponentCategory           string    `json:"fee_component_category"`
	FeeComponentAllowDiscount      bool      `json:"fee_component_allow_discount"`
	FeeComponentIsMandatoryDefault bool      `json:"fee_component_is_mandatory_default"`
	FeeComponentIsActive           bool      `json:"fee_component_is_active"`
	FeeComponentCreatedAt          time.Time `json:"fee_component_created_at"`
	FeeComponentUpdatedAt          time.Time `json:"fee_component_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

// NormalizeCode: kode selalu uppercase, dipangkas ke 50 char.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 50 {
		code = code[:50]
	}
	return code
}

func (d FeeComponentCreateDTO) ToModel(tenantID uuid.UUID) model.FeeComponent {
	m := model.FeeComponent{
		FeeComponentTenantID: tenantID,
		FeeComponentName:     strings.TrimSpace(d.FeeComponentName),
		FeeComponentCode:     NormalizeCode(d.FeeComponentCode),
		FeeComponentCategory: model.FeeComponentCategory(strings.ToUpper(strings.TrimSpace(d.FeeComponentCategory))),
		FeeComponentAllowDiscount:      true,
		FeeComponentIsMandatoryDefault: true,
		FeeComponentIsActive:           true,
	}
	if d.FeeComponentDescription != nil {
		desc := strings.TrimSpace(*d.FeeComponentDescription)
		if desc != "" {
			m.FeeComponentDescription = &desc
		}
	}
	if d.FeeComponentAllowDiscount != nil {
		m.FeeComponentAllowDiscount = *d.FeeComponentAllowDiscount
	}
	if d.FeeComponentIsMandatoryDefault != nil {
		m.FeeComponentIsMandatoryDefault = *d.FeeComponentIsMandatoryDefault
	}
	return m
}

func ApplyFeeComponentUpdate(m *model.FeeComponent, d FeeComponentUpdateDTO) {
	if d.FeeComponentName != nil {
		m.FeeComponentName = strings.TrimSpace(*d.FeeComponentName)
	}
	if d.FeeComponentDescription != nil {
		desc := strings.TrimSpace(*d.FeeComponentDescription)
		if desc == "" {
			m.FeeComponentDescription = nil
		} else {
			m.FeeComponentDescription = &desc
		}
	}
	if d.FeeComponentCategory != nil {
		m.FeeComponentCategory = model.FeeComponentCategory(strings.ToUpper(strings.TrimSpace(*d.FeeComponentCategory)))
	}
	if d.FeeComponentAllowDiscount != nil {
		m.FeeComponentAllowDiscount = *d.FeeComponentAllowDiscount
	}
	if d.FeeComponentIsMandatoryDefault != nil {
		m.FeeComponentIsMandatoryDefault = *d.FeeComponentIsMandatoryDefault
	}
}

func ToFeeComponentResponse(m model.FeeComponent) FeeComponentResponse {
	return FeeComponentResponse{
		FeeComponentID:                 m.FeeComponentID,
		FeeComponentTenantID:           m.FeeComponentTenantID,
		FeeComponentName:               m.FeeComponentName,
		FeeComponentCode:               m.FeeComponentCode,
		FeeComponentDescription:        m.FeeComponentDescription,
		FeeComponentCategory:           string(m.FeeComponentCategory),
		FeeComponentAllowDiscount:      m.FeeComponentAllowDiscount,
		FeeComponentIsMandatoryDefault: m.FeeComponentIsMandatoryDefault,
		FeeComponentIsActive:           m.FeeComponentIsActive,
		FeeComponentCreatedAt:          m.FeeComponentCreatedAt,
		FeeComponentUpdatedAt:          m.FeeComponentUpdatedAt,
	}
}

func ToFeeComponentResponses(list []model.FeeComponent) []FeeComponentResponse {
	out := make([]FeeComponentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToFeeComponentResponse(v))
	}
	return out
}
