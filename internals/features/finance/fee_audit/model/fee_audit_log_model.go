package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ==============================
   ENUM — action type
============================== */

type FeeAuditAction string

const (
	FeeAuditActionCreate     FeeAuditAction = "CREATE"
	FeeAuditActionUpdate     FeeAuditAction = "UPDATE"
	FeeAuditActionDeactivate FeeAuditAction = "DEACTIVATE"
)

/* ==============================
   MODEL fee_audit_logs
   Append-only; satu baris per perubahan logis, ditulis dalam
   transaksi yang sama dengan mutasinya. Tidak pernah di-update
   atau dihapus.
============================== */

type FeeAuditLog struct {
	FeeAuditLogID             uuid.UUID      `json:"fee_audit_log_id" gorm:"column:fee_audit_log_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FeeAuditLogTenantID       uuid.UUID      `json:"fee_audit_log_tenant_id" gorm:"column:fee_audit_log_tenant_id;type:uuid;not null;index"`
	FeeAuditLogReferenceTable string         `json:"fee_audit_log_reference_table" gorm:"column:fee_audit_log_reference_table;type:varchar(60);not null;index:idx_fee_audit_logs_ref,priority:1"`
	FeeAuditLogReferenceID    uuid.UUID      `json:"fee_audit_log_reference_id" gorm:"column:fee_audit_log_reference_id;type:uuid;not null;index:idx_fee_audit_logs_ref,priority:2"`
	FeeAuditLogActionType     FeeAuditAction `json:"fee_audit_log_action_type" gorm:"column:fee_audit_log_action_type;type:varchar(20);not null"`
	FeeAuditLogOldValue       datatypes.JSON `json:"fee_audit_log_old_value,omitempty" gorm:"column:fee_audit_log_old_value;type:jsonb"`
	FeeAuditLogNewValue       datatypes.JSON `json:"fee_audit_log_new_value,omitempty" gorm:"column:fee_audit_log_new_value;type:jsonb"`
	FeeAuditLogChangedBy      *uuid.UUID     `json:"fee_audit_log_changed_by,omitempty" gorm:"column:fee_audit_log_changed_by;type:uuid"`
	FeeAuditLogCreatedAt      time.Time      `json:"fee_audit_log_created_at" gorm:"column:fee_audit_log_created_at;type:timestamptz;not null;autoCreateTime;index"`
}

func (FeeAuditLog) TableName() string { return "fee_audit_logs" }
