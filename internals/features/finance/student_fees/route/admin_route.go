package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/student_fees/controller"
)

func StudentFeesRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.StudentFeeHandler{DB: db}

	// Tagihan per siswa
	r.Post("/students/:student_id/fees/assign-template", h.AssignTemplateFees)
	r.Post("/students/:student_id/fees/custom", h.AddCustomFee)
	r.Get("/students/:student_id/fees", h.GetStudentFees)
	r.Get("/students/:student_id/payments", h.GetPaymentHistory)

	// Ledger diskon & pembayaran
	r.Post("/fee-assignments/:id/discounts", h.AddDiscount)
	r.Post("/fee-assignments/:id/payments", h.RecordPayment)
	r.Delete("/fee-discounts/:id", h.DeactivateDiscount)

	// Laporan
	r.Get("/fee-reports", h.GetFeeReport)
}
