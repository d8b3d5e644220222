package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fee_structures/model"
)

////////////////////////////////////////////////////////////////////////////////
// CLASS FEE STRUCTURES — DTO
////////////////////////////////////////////////////////////////////////////////

type ClassFeeStructureCreateDTO struct {
	ClassFeeStructureAcademicYearID uuid.UUID       `json:"class_fee_structure_academic_year_id" validate:"required"`
	ClassFeeStructureClassID        uuid.UUID       `json:"class_fee_structure_class_id" validate:"required"`
	ClassFeeStructureFeeComponentID uuid.UUID       `json:"class_fee_structure_fee_component_id" validate:"required"`
	ClassFeeStructureAmount         decimal.Decimal `json:"class_fee_structure_amount"`
	ClassFeeStructureFrequency      *string         `json:"class_fee_structure_frequency,omitempty" validate:"omitempty,oneof=one_time monthly term_wise"`
	ClassFeeStructureIsMandatory    *bool           `json:"class_fee_structure_is_mandatory,omitempty"`
	ClassFeeStructureDueDate        *time.Time      `json:"class_fee_structure_due_date,omitempty"`
}

// Update (partial) — tahun/kelas/komponen adalah identitas baris, tidak bisa diganti.
type ClassFeeStructureUpdateDTO struct {
	ClassFeeStructureAmount      *decimal.Decimal `json:"class_fee_structure_amount,omitempty"`
	ClassFeeStructureFrequency   *string          `json:"class_fee_structure_frequency,omitempty" validate:"omitempty,oneof=one_time monthly term_wise"`
	ClassFeeStructureIsMandatory *bool            `json:"class_fee_structure_is_mandatory,omitempty"`
	ClassFeeStructureIsActive    *bool            `json:"class_fee_structure_is_active,omitempty"`
	ClassFeeStructureDueDate     *time.Time       `json:"class_fee_structure_due_date,omitempty"`
}

type ClassFeeStructureResponse struct {
	ClassFeeStructureID             uuid.UUID       `json:"class_fee_structure_id"`
	ClassFeeStructureTenantID       uuid.UUID       `json:"class_fee_structure_tenant_id"`
	ClassFeeStructureAcademicYearID uuid.UUID       `json:"class_fee_structure_academic_year_id"`
	ClassFeeStructureClassID        uuid.UUID       `json:"class_fee_structure_class_id"`
	ClassFeeStructureFeeComponentID uuid.UUID       `json:"class_fee_structure_fee_component_id"`
	ClassFeeStructureAmount         decimal.Decimal `json:"class_fee_structure_amount"`
	ClassFeeStructureFrequency      string          `json:"class_fee_structure_frequency"`
	ClassFeeStructureIsMandatory    bool            `json:"class_fee_structure_is_mandatory"`
	ClassFeeStructureIsActive       bool            `json:"class_fee_structure_is_active"`
	ClassFeeStructureDueDate        *time.Time      `json:"class_fee_structure_due_date,omitempty"`
	ClassFeeStructureCreatedAt      time.Time       `json:"class_fee_structure_created_at"`
	ClassFeeStructureUpdatedAt      time.Time       `json:"class_fee_structure_updated_at"`
}

// Baris untuk tampilan grid per kelas (join komponen + kelas).
type ClassFeeStructureGridRow struct {
	ClassFeeStructureID             uuid.UUID       `json:"class_fee_structure_id"`
	ClassFeeStructureClassID        uuid.UUID       `json:"class_fee_structure_class_id"`
	ClassName                       string          `json:"class_name"`
	ClassDisplayOrder               *int            `json:"class_display_order,omitempty"`
	ClassFeeStructureFeeComponentID uuid.UUID       `json:"class_fee_structure_fee_component_id"`
	FeeComponentName                string          `json:"fee_component_name"`
	FeeComponentCode                string          `json:"fee_component_code"`
	ClassFeeStructureAmount         decimal.Decimal `json:"class_fee_structure_amount"`
	ClassFeeStructureFrequency      string          `json:"class_fee_structure_frequency"`
	ClassFeeStructureIsMandatory    bool            `json:"class_fee_structure_is_mandatory"`
	ClassFeeStructureDueDate        *time.Time      `json:"class_fee_structure_due_date,omitempty"`
}

// Grid per kelas: nama kelas + barisnya + subtotal wajib.
type ClassFeeGrid struct {
	ClassID        uuid.UUID                  `json:"class_id"`
	ClassName      string                     `json:"class_name"`
	MandatoryTotal decimal.Decimal            `json:"mandatory_total"`
	Items          []ClassFeeStructureGridRow `json:"items"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func (d ClassFeeStructureCreateDTO) ToModel(tenantID uuid.UUID) model.ClassFeeStructure {
	m := model.ClassFeeStructure{
		ClassFeeStructureTenantID:       tenantID,
		ClassFeeStructureAcademicYearID: d.ClassFeeStructureAcademicYearID,
		ClassFeeStructureClassID:        d.ClassFeeStructureClassID,
		ClassFeeStructureFeeComponentID: d.ClassFeeStructureFeeComponentID,
		ClassFeeStructureAmount:         d.ClassFeeStructureAmount,
		ClassFeeStructureFrequency:      model.FeeFrequencyOneTime,
		ClassFeeStructureIsMandatory:    true,
		ClassFeeStructureIsActive:       true,
		ClassFeeStructureDueDate:        d.ClassFeeStructureDueDate,
	}
	if d.ClassFeeStructureFrequency != nil {
		m.ClassFeeStructureFrequency = model.FeeFrequency(strings.ToLower(strings.TrimSpace(*d.ClassFeeStructureFrequency)))
	}
	if d.ClassFeeStructureIsMandatory != nil {
		m.ClassFeeStructureIsMandatory = *d.ClassFeeStructureIsMandatory
	}
	return m
}

func ApplyClassFeeStructureUpdate(m *model.ClassFeeStructure, d ClassFeeStructureUpdateDTO) {
	if d.ClassFeeStructureAmount != nil {
		m.ClassFeeStructureAmount = *d.ClassFeeStructureAmount
	}
	if d.ClassFeeStructureFrequency != nil {
		m.ClassFeeStructureFrequency = model.FeeFrequency(strings.ToLower(strings.TrimSpace(*d.ClassFeeStructureFrequency)))
	}
	if d.ClassFeeStructureIsMandatory != nil {
		m.ClassFeeStructureIsMandatory = *d.ClassFeeStructureIsMandatory
	}
	if d.ClassFeeStructureIsActive != nil {
		m.ClassFeeStructureIsActive = *d.ClassFeeStructureIsActive
	}
	if d.ClassFeeStructureDueDate != nil {
		m.ClassFeeStructureDueDate = d.ClassFeeStructureDueDate
	}
}

func ToClassFeeStructureResponse(m model.ClassFeeStructure) ClassFeeStructureResponse {
	return ClassFeeStructureResponse{
		ClassFeeStructureID:             m.ClassFeeStructureID,
		ClassFeeStructureTenantID:       m.ClassFeeStructureTenantID,
		ClassFeeStructureAcademicYearID: m.ClassFeeStructureAcademicYearID,
		ClassFeeStructureClassID:        m.ClassFeeStructureClassID,
		ClassFeeStructureFeeComponentID: m.ClassFeeStructureFeeComponentID,
		ClassFeeStructureAmount:         m.ClassFeeStructureAmount,
		ClassFeeStructureFrequency:      string(m.ClassFeeStructureFrequency),
		ClassFeeStructureIsMandatory:    m.ClassFeeStructureIsMandatory,
		ClassFeeStructureIsActive:       m.ClassFeeStructureIsActive,
		ClassFeeStructureDueDate:        m.ClassFeeStructureDueDate,
		ClassFeeStructureCreatedAt:      m.ClassFeeStructureCreatedAt,
		ClassFeeStructureUpdatedAt:      m.ClassFeeStructureUpdatedAt,
	}
}

func ToClassFeeStructureResponses(list []model.ClassFeeStructure) []ClassFeeStructureResponse {
	out := make([]ClassFeeStructureResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToClassFeeStructureResponse(v))
	}
	return out
}
