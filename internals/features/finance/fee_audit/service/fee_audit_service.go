package service

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fee_audit/model"
)

// Log menulis satu baris audit di dalam tx pemanggil. Snapshot old/new
// berupa map field -> nilai (stringified) yang diserialisasi ke JSONB.
// Jika tx di-rollback, baris audit ikut hilang — itu memang kontraknya.
func Log(
	tx *gorm.DB,
	tenantID uuid.UUID,
	referenceTable string,
	referenceID uuid.UUID,
	action model.FeeAuditAction,
	oldValue, newValue map[string]any,
	changedBy *uuid.UUID,
) error {
	row := model.FeeAuditLog{
		FeeAuditLogTenantID:       tenantID,
		FeeAuditLogReferenceTable: referenceTable,
		FeeAuditLogReferenceID:    referenceID,
		FeeAuditLogActionType:     action,
		FeeAuditLogChangedBy:      changedBy,
	}
	if oldValue != nil {
		b, err := sonic.Marshal(oldValue)
		if err != nil {
			return err
		}
		row.FeeAuditLogOldValue = b
	}
	if newValue != nil {
		b, err := sonic.Marshal(newValue)
		if err != nil {
			return err
		}
		row.FeeAuditLogNewValue = b
	}
	return tx.Create(&row).Error
}
