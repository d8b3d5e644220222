package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/student_fees/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT FEES — REQUEST DTO
////////////////////////////////////////////////////////////////////////////////

// Pilihan komponen opsional saat assign template. Override amount
// (kalau diisi) menggantikan nominal template untuk snapshot siswa ini.
type OptionalFeeSelectionDTO struct {
	ClassFeeStructureID uuid.UUID        `json:"class_fee_structure_id" validate:"required"`
	OverrideAmount      *decimal.Decimal `json:"override_amount,omitempty"`
}

type AssignTemplateFeesDTO struct {
	AcademicYearID     uuid.UUID                 `json:"academic_year_id" validate:"required"`
	OptionalSelections []OptionalFeeSelectionDTO `json:"optional_selections,omitempty" validate:"omitempty,dive"`
}

type CustomFeeCreateDTO struct {
	AcademicYearID uuid.UUID       `json:"academic_year_id" validate:"required"`
	CustomName     string          `json:"custom_name" validate:"required,max=100"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         *string         `json:"reason,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}

type DiscountCreateDTO struct {
	DiscountName     string          `json:"discount_name" validate:"required,max=100"`
	DiscountCategory string          `json:"discount_category" validate:"required,oneof=MASTER CUSTOM SYSTEM"`
	DiscountType     string          `json:"discount_type" validate:"required,oneof=fixed percentage"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	Reason           *string         `json:"reason,omitempty"`
}

type PaymentCreateDTO struct {
	Amount               decimal.Decimal `json:"amount"`
	PaymentMode          string          `json:"payment_mode" validate:"required,oneof=UPI CARD CASH BANK"`
	TransactionReference *string         `json:"transaction_reference,omitempty" validate:"omitempty,max=100"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	Notes                *string         `json:"notes,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STUDENT FEES — RESPONSE DTO
////////////////////////////////////////////////////////////////////////////////

type StudentFeeAssignmentResponse struct {
	StudentFeeAssignmentID              uuid.UUID       `json:"student_fee_assignment_id"`
	StudentFeeAssignmentStudentID       uuid.UUID       `json:"student_fee_assignment_student_id"`
	StudentFeeAssignmentAcademicYearID  uuid.UUID       `json:"student_fee_assignment_academic_year_id"`
	StudentFeeAssignmentSourceType      string          `json:"student_fee_assignment_source_type"`
	StudentFeeAssignmentStructureID     *uuid.UUID      `json:"student_fee_assignment_class_fee_structure_id,omitempty"`
	StudentFeeAssignmentCustomName      *string         `json:"student_fee_assignment_custom_name,omitempty"`
	StudentFeeAssignmentBaseAmount      decimal.Decimal `json:"student_fee_assignment_base_amount"`
	StudentFeeAssignmentTotalDiscount   decimal.Decimal `json:"student_fee_assignment_total_discount_amount"`
	StudentFeeAssignmentFinalAmount     decimal.Decimal `json:"student_fee_assignment_final_amount"`
	StudentFeeAssignmentStatus          string          `json:"student_fee_assignment_status"`
	StudentFeeAssignmentIsMandatory     bool            `json:"student_fee_assignment_is_mandatory"`
	StudentFeeAssignmentDueDate         *time.Time      `json:"student_fee_assignment_due_date,omitempty"`
	StudentFeeAssignmentIsActive        bool            `json:"student_fee_assignment_is_active"`
	StudentFeeAssignmentCreatedAt       time.Time       `json:"student_fee_assignment_created_at"`
	StudentFeeAssignmentUpdatedAt       time.Time       `json:"student_fee_assignment_updated_at"`
}

// Hasil assign template: berapa yang dibuat vs dilewati (sudah ada).
type AssignTemplateFeesResult struct {
	AssignedCount int                            `json:"assigned_count"`
	SkippedCount  int                            `json:"skipped_count"`
	Assignments   []StudentFeeAssignmentResponse `json:"assignments"`
}

type StudentFeeDiscountResponse struct {
	StudentFeeDiscountID               uuid.UUID       `json:"student_fee_discount_id"`
	StudentFeeDiscountAssignmentID     uuid.UUID       `json:"student_fee_discount_assignment_id"`
	StudentFeeDiscountName             string          `json:"student_fee_discount_name"`
	StudentFeeDiscountCategory         string          `json:"student_fee_discount_category"`
	StudentFeeDiscountType             string          `json:"student_fee_discount_type"`
	StudentFeeDiscountValue            decimal.Decimal `json:"student_fee_discount_value"`
	StudentFeeDiscountCalculatedAmount decimal.Decimal `json:"student_fee_discount_calculated_amount"`
	StudentFeeDiscountReason           *string         `json:"student_fee_discount_reason,omitempty"`
	StudentFeeDiscountApprovedBy       *uuid.UUID      `json:"student_fee_discount_approved_by,omitempty"`
	StudentFeeDiscountIsActive         bool            `json:"student_fee_discount_is_active"`
	StudentFeeDiscountCreatedAt        time.Time       `json:"student_fee_discount_created_at"`
}

type PaymentTransactionResponse struct {
	PaymentTransactionID              uuid.UUID       `json:"payment_transaction_id"`
	PaymentTransactionAssignmentID    uuid.UUID       `json:"payment_transaction_assignment_id"`
	PaymentTransactionAmount          decimal.Decimal `json:"payment_transaction_amount"`
	PaymentTransactionMode            string          `json:"payment_transaction_mode"`
	PaymentTransactionStatus          string          `json:"payment_transaction_status"`
	PaymentTransactionReferenceNumber *string         `json:"payment_transaction_reference_number,omitempty"`
	PaymentTransactionPaidAt          time.Time       `json:"payment_transaction_paid_at"`
	PaymentTransactionCollectedBy     *uuid.UUID      `json:"payment_transaction_collected_by,omitempty"`
	PaymentTransactionCreatedAt       time.Time       `json:"payment_transaction_created_at"`
}

// Hasil record payment: transaksi + status assignment terbaru.
type RecordPaymentResult struct {
	Payment    PaymentTransactionResponse   `json:"payment"`
	Assignment StudentFeeAssignmentResponse `json:"assignment"`
}

// Baris tagihan siswa dengan field display hasil join.
type StudentFeeRow struct {
	StudentFeeAssignmentID uuid.UUID       `json:"student_fee_assignment_id"`
	SourceType             string          `json:"source_type"`
	FeeName                string          `json:"fee_name"`
	FeeComponentCode       *string         `json:"fee_component_code,omitempty"`
	ClassName              *string         `json:"class_name,omitempty"`
	BaseAmount             decimal.Decimal `json:"base_amount"`
	TotalDiscountAmount    decimal.Decimal `json:"total_discount_amount"`
	FinalAmount            decimal.Decimal `json:"final_amount"`
	Status                 string          `json:"status"`
	IsMandatory            bool            `json:"is_mandatory"`
	DueDate                *time.Time      `json:"due_date,omitempty"`
}

// Riwayat pembayaran (success saja), terbaru dulu.
type PaymentHistoryRow struct {
	PaymentTransactionID uuid.UUID       `json:"payment_transaction_id"`
	AssignmentID         uuid.UUID       `json:"assignment_id"`
	FeeName              string          `json:"fee_name"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentMode          string          `json:"payment_mode"`
	ReferenceNumber      *string         `json:"reference_number,omitempty"`
	PaidAt               time.Time       `json:"paid_at"`
	CollectedBy          *uuid.UUID      `json:"collected_by,omitempty"`
}

// Baris laporan keuangan per assignment.
type FeeReportRow struct {
	StudentID              uuid.UUID       `json:"student_id"`
	StudentName            string          `json:"student_name"`
	ClassName              *string         `json:"class_name,omitempty"`
	SectionName            *string         `json:"section_name,omitempty"`
	StudentFeeAssignmentID uuid.UUID       `json:"student_fee_assignment_id"`
	FeeName                string          `json:"fee_name"`
	BaseAmount             decimal.Decimal `json:"base_amount"`
	TotalDiscountAmount    decimal.Decimal `json:"total_discount_amount"`
	FinalAmount            decimal.Decimal `json:"final_amount"`
	AmountPaid             decimal.Decimal `json:"amount_paid"`
	Balance                decimal.Decimal `json:"balance"`
	Status                 string          `json:"status"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToStudentFeeAssignmentResponse(m model.StudentFeeAssignment) StudentFeeAssignmentResponse {
	return StudentFeeAssignmentResponse{
		StudentFeeAssignmentID:             m.StudentFeeAssignmentID,
		StudentFeeAssignmentStudentID:      m.StudentFeeAssignmentStudentID,
		StudentFeeAssignmentAcademicYearID: m.StudentFeeAssignmentAcademicYearID,
		StudentFeeAssignmentSourceType:     string(m.StudentFeeAssignmentSourceType),
		StudentFeeAssignmentStructureID:    m.StudentFeeAssignmentClassFeeStructureID,
		StudentFeeAssignmentCustomName:     m.StudentFeeAssignmentCustomName,
		StudentFeeAssignmentBaseAmount:     m.StudentFeeAssignmentBaseAmount,
		StudentFeeAssignmentTotalDiscount:  m.StudentFeeAssignmentTotalDiscountAmount,
		StudentFeeAssignmentFinalAmount:    m.StudentFeeAssignmentFinalAmount,
		StudentFeeAssignmentStatus:         string(m.StudentFeeAssignmentStatus),
		StudentFeeAssignmentIsMandatory:    m.StudentFeeAssignmentIsMandatory,
		StudentFeeAssignmentDueDate:        m.StudentFeeAssignmentDueDate,
		StudentFeeAssignmentIsActive:       m.StudentFeeAssignmentIsActive,
		StudentFeeAssignmentCreatedAt:      m.StudentFeeAssignmentCreatedAt,
		StudentFeeAssignmentUpdatedAt:      m.StudentFeeAssignmentUpdatedAt,
	}
}

func ToStudentFeeAssignmentResponses(list []model.StudentFeeAssignment) []StudentFeeAssignmentResponse {
	out := make([]StudentFeeAssignmentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToStudentFeeAssignmentResponse(v))
	}
	return out
}

func ToStudentFeeDiscountResponse(m model.StudentFeeDiscount) StudentFeeDiscountResponse {
	return StudentFeeDiscountResponse{
		StudentFeeDiscountID:               m.StudentFeeDiscountID,
		StudentFeeDiscountAssignmentID:     m.StudentFeeDiscountAssignmentID,
		StudentFeeDiscountName:             m.StudentFeeDiscountName,
		StudentFeeDiscountCategory:         string(m.StudentFeeDiscountCategory),
		StudentFeeDiscountType:             string(m.StudentFeeDiscountType),
		StudentFeeDiscountValue:            m.StudentFeeDiscountValue,
		StudentFeeDiscountCalculatedAmount: m.StudentFeeDiscountCalculatedAmount,
		StudentFeeDiscountReason:           m.StudentFeeDiscountReason,
		StudentFeeDiscountApprovedBy:       m.StudentFeeDiscountApprovedBy,
		StudentFeeDiscountIsActive:         m.StudentFeeDiscountIsActive,
		StudentFeeDiscountCreatedAt:        m.StudentFeeDiscountCreatedAt,
	}
}

func ToPaymentTransactionResponse(m model.PaymentTransaction) PaymentTransactionResponse {
	return PaymentTransactionResponse{
		PaymentTransactionID:              m.PaymentTransactionID,
		PaymentTransactionAssignmentID:    m.PaymentTransactionAssignmentID,
		PaymentTransactionAmount:          m.PaymentTransactionAmount,
		PaymentTransactionMode:            string(m.PaymentTransactionMode),
		PaymentTransactionStatus:          string(m.PaymentTransactionStatus),
		PaymentTransactionReferenceNumber: m.PaymentTransactionReferenceNumber,
		PaymentTransactionPaidAt:          m.PaymentTransactionPaidAt,
		PaymentTransactionCollectedBy:     m.PaymentTransactionCollectedBy,
		PaymentTransactionCreatedAt:       m.PaymentTransactionCreatedAt,
	}
}
