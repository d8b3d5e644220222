package controller

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsmodel "schoolku_backend/internals/features/academics/model"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	compmodel "schoolku_backend/internals/features/finance/fee_components/model"
	"schoolku_backend/internals/features/finance/fee_structures/dto"
	"schoolku_backend/internals/features/finance/fee_structures/model"
)

// Jalan hanya kalau TEST_DATABASE_URL diset (postgres kosong untuk test).
func openStructureTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&academicsmodel.AcademicYear{},
		&academicsmodel.SchoolClass{},
		&compmodel.FeeComponent{},
		&model.ClassFeeStructure{},
		&auditmodel.FeeAuditLog{},
	))

	tenantID := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("tenant_id", tenantID.String())
		c.Locals("user_id", uuid.New().String())
		c.Locals("role", "ADMIN")
		return c.Next()
	})
	h := &ClassFeeStructureHandler{DB: db}
	app.Get("/class-fee-structures", h.List)
	app.Delete("/class-fee-structures/:id", h.Deactivate)
	return app, db, tenantID
}

// Satu template aktif + satu nonaktif pada tahun ajaran yang sama.
func seedStructurePair(t *testing.T, db *gorm.DB, tenantID uuid.UUID) (yearID, activeID, inactiveID uuid.UUID) {
	t.Helper()

	year := academicsmodel.AcademicYear{
		AcademicYearTenantID:  tenantID,
		AcademicYearName:      "2026-2027",
		AcademicYearStartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC),
		AcademicYearStatus:    academicsmodel.AcademicYearStatusActive,
	}
	require.NoError(t, db.Create(&year).Error)

	class := academicsmodel.SchoolClass{
		ClassTenantID: tenantID,
		ClassName:     "Grade 3",
	}
	require.NoError(t, db.Create(&class).Error)

	mk := func(code string) uuid.UUID {
		comp := compmodel.FeeComponent{
			FeeComponentTenantID: tenantID,
			FeeComponentName:     code + " Fee",
			FeeComponentCode:     code,
			FeeComponentCategory: compmodel.FeeComponentCategoryAcademic,
			FeeComponentIsActive: true,
		}
		require.NoError(t, db.Create(&comp).Error)
		cfs := model.ClassFeeStructure{
			ClassFeeStructureTenantID:       tenantID,
			ClassFeeStructureAcademicYearID: year.AcademicYearID,
			ClassFeeStructureClassID:        class.ClassID,
			ClassFeeStructureFeeComponentID: comp.FeeComponentID,
			ClassFeeStructureAmount:         decimal.NewFromInt(500),
			ClassFeeStructureFrequency:      model.FeeFrequencyOneTime,
			ClassFeeStructureIsMandatory:    true,
			ClassFeeStructureIsActive:       true,
		}
		require.NoError(t, db.Create(&cfs).Error)
		return cfs.ClassFeeStructureID
	}

	activeID = mk("TUITION")
	inactiveID = mk("EXAM")
	require.NoError(t, db.Model(&model.ClassFeeStructure{}).
		Where("class_fee_structure_id = ?", inactiveID).
		Update("class_fee_structure_is_active", false).Error)

	return year.AcademicYearID, activeID, inactiveID
}

type listEnvelope struct {
	Data []dto.ClassFeeStructureResponse `json:"data"`
}

func TestClassFeeStructureList_RequiresAcademicYear(t *testing.T) {
	app, _, _ := openStructureTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/class-fee-structures", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClassFeeStructureList_OnlyActiveRows(t *testing.T) {
	app, db, tenantID := openStructureTestApp(t)
	yearID, activeID, _ := seedStructurePair(t, db, tenantID)

	resp, err := app.Test(httptest.NewRequest("GET",
		"/class-fee-structures?academic_year_id="+yearID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body listEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	require.Equal(t, activeID, body.Data[0].ClassFeeStructureID)
	require.True(t, body.Data[0].ClassFeeStructureIsActive)
}

func TestClassFeeStructureDeactivate_SoftAndAudited(t *testing.T) {
	app, db, tenantID := openStructureTestApp(t)
	yearID, activeID, _ := seedStructurePair(t, db, tenantID)

	resp, err := app.Test(httptest.NewRequest("DELETE",
		"/class-fee-structures/"+activeID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var m model.ClassFeeStructure
	require.NoError(t, db.First(&m, "class_fee_structure_id = ?", activeID).Error)
	require.False(t, m.ClassFeeStructureIsActive)

	var n int64
	require.NoError(t, db.Model(&auditmodel.FeeAuditLog{}).
		Where("fee_audit_log_reference_table = ?", "class_fee_structures").
		Where("fee_audit_log_reference_id = ?", activeID).
		Where("fee_audit_log_action_type = ?", auditmodel.FeeAuditActionDeactivate).
		Count(&n).Error)
	require.EqualValues(t, 1, n)

	// Ulangan tidak menulis audit kedua.
	resp, err = app.Test(httptest.NewRequest("DELETE",
		"/class-fee-structures/"+activeID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.Model(&auditmodel.FeeAuditLog{}).
		Where("fee_audit_log_reference_table = ?", "class_fee_structures").
		Where("fee_audit_log_reference_id = ?", activeID).
		Where("fee_audit_log_action_type = ?", auditmodel.FeeAuditActionDeactivate).
		Count(&n).Error)
	require.EqualValues(t, 1, n)

	// List tidak lagi menampilkan baris yang dinonaktifkan.
	resp, err = app.Test(httptest.NewRequest("GET",
		"/class-fee-structures?academic_year_id="+yearID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body listEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 0)
}
