package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ==============================
   ENUM — mode & status pembayaran
============================== */

type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeCash PaymentMode = "CASH"
	PaymentModeBank PaymentMode = "BANK"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeUPI, PaymentModeCard, PaymentModeCash, PaymentModeBank:
		return true
	}
	return false
}

type PaymentTxnStatus string

const (
	PaymentTxnSuccess PaymentTxnStatus = "success"
	PaymentTxnFailed  PaymentTxnStatus = "failed"
)

/* ==============================
   MODEL payment_transactions
   Append-only ledger: tidak ada update/delete, koreksi lewat
   transaksi failed + entri baru.
============================== */

type PaymentTransaction struct {
	PaymentTransactionID       uuid.UUID `json:"payment_transaction_id" gorm:"column:payment_transaction_id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentTransactionTenantID uuid.UUID `json:"payment_transaction_tenant_id" gorm:"column:payment_transaction_tenant_id;type:uuid;not null;index"`

	PaymentTransactionAssignmentID   uuid.UUID `json:"payment_transaction_assignment_id" gorm:"column:payment_transaction_assignment_id;type:uuid;not null;index"`
	PaymentTransactionAcademicYearID uuid.UUID `json:"payment_transaction_academic_year_id" gorm:"column:payment_transaction_academic_year_id;type:uuid;not null;index"`

	PaymentTransactionAmount decimal.Decimal  `json:"payment_transaction_amount" gorm:"column:payment_transaction_amount;type:numeric(12,2);not null"`
	PaymentTransactionMode   PaymentMode      `json:"payment_transaction_mode" gorm:"column:payment_transaction_mode;type:varchar(10);not null"`
	PaymentTransactionStatus PaymentTxnStatus `json:"payment_transaction_status" gorm:"column:payment_transaction_status;type:varchar(10);not null;default:'success';index"`

	PaymentTransactionReferenceNumber *string    `json:"payment_transaction_reference_number,omitempty" gorm:"column:payment_transaction_reference_number;type:varchar(100)"`
	PaymentTransactionPaidAt          time.Time  `json:"payment_transaction_paid_at" gorm:"column:payment_transaction_paid_at;type:timestamptz;not null"`
	PaymentTransactionCollectedBy     *uuid.UUID `json:"payment_transaction_collected_by,omitempty" gorm:"column:payment_transaction_collected_by;type:uuid"`
	PaymentTransactionNotes           *string    `json:"payment_transaction_notes,omitempty" gorm:"column:payment_transaction_notes;type:text"`

	PaymentTransactionCreatedAt time.Time `json:"payment_transaction_created_at" gorm:"column:payment_transaction_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (PaymentTransaction) TableName() string { return "payment_transactions" }
