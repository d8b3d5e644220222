// file: internals/route/routes.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "schoolku_backend/internals/features/academics/route"
	feeAuditRoute "schoolku_backend/internals/features/finance/fee_audit/route"
	feeComponentsRoute "schoolku_backend/internals/features/finance/fee_components/route"
	feeStructuresRoute "schoolku_backend/internals/features/finance/fee_structures/route"
	studentFeesRoute "schoolku_backend/internals/features/finance/student_fees/route"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN (per tenant) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + tenant scope)...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Mounting Academics routes...")
	academicsRoute.AcademicsRoutes(admin, db)

	log.Println("[INFO] Mounting Finance routes...")
	feeComponentsRoute.FeeComponentsRoutes(admin, db)
	feeStructuresRoute.FeeStructuresRoutes(admin, db)
	studentFeesRoute.StudentFeesRoutes(admin, db)
	feeAuditRoute.FeeAuditRoutes(admin, db)
}
