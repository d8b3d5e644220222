package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fee_audit/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeAuditHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /fee-audit-logs) — read-only compliance view.
// Query filters (opsional):
// - reference_table, reference_id, action_type
// - page, per_page, sort_by (created_at), order
// -----------------------------------------
func (h *FeeAuditHandler) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.FeeAuditLog{}).
		Where("fee_audit_log_tenant_id = ?", tenantID)

	if v := c.Query("reference_table"); v != "" {
		q = q.Where("fee_audit_log_reference_table = ?", v)
	}
	if id, err := helper.ParseUUIDQuery(c, "reference_id"); err != nil {
		return helper.FromFiberError(c, err)
	} else if id != nil {
		q = q.Where("fee_audit_log_reference_id = ?", *id)
	}
	if v := c.Query("action_type"); v != "" {
		q = q.Where("fee_audit_log_action_type = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "fee_audit_log_created_at",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.FeeAuditLog
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", list, helper.BuildMeta(total, p))
}
