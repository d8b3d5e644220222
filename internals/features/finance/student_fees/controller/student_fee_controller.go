package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentFeeHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// AssignTemplateFees (POST /students/:student_id/fees/assign-template)
// -----------------------------------------
func (h *StudentFeeHandler) AssignTemplateFees(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.AssignTemplateFeesDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := service.AssignTemplateFees(h.DB, tenantID, studentID, in, helper.GetUserIDPtrFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "fees assigned", res)
}

// -----------------------------------------
// AddCustomFee (POST /students/:student_id/fees/custom)
// -----------------------------------------
func (h *StudentFeeHandler) AddCustomFee(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.CustomFeeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	a, err := service.AddCustomFee(h.DB, tenantID, studentID, in, helper.GetUserIDPtrFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "custom fee added", dto.ToStudentFeeAssignmentResponse(*a))
}

// -----------------------------------------
// GetStudentFees (GET /students/:student_id/fees?academic_year_id=)
// -----------------------------------------
func (h *StudentFeeHandler) GetStudentFees(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := service.GetStudentFees(h.DB, tenantID, studentID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// -----------------------------------------
// AddDiscount (POST /fee-assignments/:id/discounts)
// Role pemanggil diteruskan eksplisit ke service untuk gate ambang.
// -----------------------------------------
func (h *StudentFeeHandler) AddDiscount(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assignmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.DiscountCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	d, a, err := service.AddDiscount(h.DB, tenantID, assignmentID, in,
		helper.GetRoleFromToken(c), helper.GetUserIDPtrFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "discount added", fiber.Map{
		"discount":   dto.ToStudentFeeDiscountResponse(*d),
		"assignment": dto.ToStudentFeeAssignmentResponse(*a),
	})
}

// -----------------------------------------
// DeactivateDiscount (DELETE /fee-discounts/:id)
// -----------------------------------------
func (h *StudentFeeHandler) DeactivateDiscount(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	discountID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	d, a, err := service.DeactivateDiscount(h.DB, tenantID, discountID, helper.GetUserIDPtrFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "discount deactivated", fiber.Map{
		"discount":   dto.ToStudentFeeDiscountResponse(*d),
		"assignment": dto.ToStudentFeeAssignmentResponse(*a),
	})
}

// -----------------------------------------
// RecordPayment (POST /fee-assignments/:id/payments)
// -----------------------------------------
func (h *StudentFeeHandler) RecordPayment(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assignmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	p, a, err := service.RecordPayment(h.DB, tenantID, assignmentID, in, helper.GetUserIDPtrFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payment recorded", dto.RecordPaymentResult{
		Payment:    dto.ToPaymentTransactionResponse(*p),
		Assignment: dto.ToStudentFeeAssignmentResponse(*a),
	})
}

// -----------------------------------------
// GetPaymentHistory (GET /students/:student_id/payments?academic_year_id=)
// -----------------------------------------
func (h *StudentFeeHandler) GetPaymentHistory(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := service.GetPaymentHistory(h.DB, tenantID, studentID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// -----------------------------------------
// GetFeeReport (GET /fee-reports?academic_year_id=&class_id=&status=)
// -----------------------------------------
func (h *StudentFeeHandler) GetFeeReport(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if yearID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id is required")
	}
	classID, err := helper.ParseUUIDQuery(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var statusFilter *string
	if s := c.Query("status"); s != "" {
		statusFilter = &s
	}

	rows, err := service.GetFeeReport(h.DB, tenantID, *yearID, classID, statusFilter)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}
