package service

import (
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsmodel "schoolku_backend/internals/features/academics/model"
	auditmodel "schoolku_backend/internals/features/finance/fee_audit/model"
	compmodel "schoolku_backend/internals/features/finance/fee_components/model"
	structmodel "schoolku_backend/internals/features/finance/fee_structures/model"
	"schoolku_backend/internals/features/finance/student_fees/dto"
	"schoolku_backend/internals/features/finance/student_fees/model"
	helper "schoolku_backend/internals/helpers"
)

// Jalan hanya kalau TEST_DATABASE_URL diset (postgres kosong untuk test).
func openTestDB(t *testing.T) *gorm.DB {
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
		&academicsmodel.Section{},
		&academicsmodel.Student{},
		&academicsmodel.StudentAcademicRecord{},
		&compmodel.FeeComponent{},
		&structmodel.ClassFeeStructure{},
		&model.StudentFeeAssignment{},
		&model.StudentFeeDiscount{},
		&model.PaymentTransaction{},
		&auditmodel.FeeAuditLog{},
	))
	return db
}

type feeFixture struct {
	tenantID    uuid.UUID
	yearID      uuid.UUID
	classID     uuid.UUID
	studentID   uuid.UUID
	structID    uuid.UUID // template wajib (TUITION, 1000)
	optStructID uuid.UUID // template opsional (BUS, 300)
	adminID     uuid.UUID
}

// seedFeeFixture: tenant segar per test supaya data antar test tidak saling lihat.
func seedFeeFixture(t *testing.T, db *gorm.DB) feeFixture {
	t.Helper()
	f := feeFixture{tenantID: uuid.New(), adminID: uuid.New()}

	year := academicsmodel.AcademicYear{
		AcademicYearTenantID:  f.tenantID,
		AcademicYearName:      "2026-2027",
		AcademicYearStartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC),
		AcademicYearStatus:    academicsmodel.AcademicYearStatusActive,
	}
	require.NoError(t, db.Create(&year).Error)
	f.yearID = year.AcademicYearID

	class := academicsmodel.SchoolClass{
		ClassTenantID: f.tenantID,
		ClassName:     "Grade 5",
	}
	require.NoError(t, db.Create(&class).Error)
	f.classID = class.ClassID

	section := academicsmodel.Section{
		SectionTenantID: f.tenantID,
		SectionClassID:  class.ClassID,
		SectionName:     "A",
	}
	require.NoError(t, db.Create(&section).Error)

	student := academicsmodel.Student{
		StudentTenantID: f.tenantID,
		StudentFullName: "Budi Santoso",
		StudentIsActive: true,
	}
	require.NoError(t, db.Create(&student).Error)
	f.studentID = student.StudentID

	rec := academicsmodel.StudentAcademicRecord{
		StudentAcademicRecordTenantID:       f.tenantID,
		StudentAcademicRecordStudentID:      student.StudentID,
		StudentAcademicRecordAcademicYearID: year.AcademicYearID,
		StudentAcademicRecordClassID:        class.ClassID,
		StudentAcademicRecordSectionID:      section.SectionID,
		StudentAcademicRecordStatus:         academicsmodel.AcademicRecordStatusActive,
	}
	require.NoError(t, db.Create(&rec).Error)

	comp := compmodel.FeeComponent{
		FeeComponentTenantID:           f.tenantID,
		FeeComponentName:               "Tuition Fee",
		FeeComponentCode:               "TUITION",
		FeeComponentCategory:           compmodel.FeeComponentCategoryAcademic,
		FeeComponentAllowDiscount:      true,
		FeeComponentIsMandatoryDefault: true,
		FeeComponentIsActive:           true,
	}
	require.NoError(t, db.Create(&comp).Error)

	cfs := structmodel.ClassFeeStructure{
		ClassFeeStructureTenantID:       f.tenantID,
		ClassFeeStructureAcademicYearID: year.AcademicYearID,
		ClassFeeStructureClassID:        class.ClassID,
		ClassFeeStructureFeeComponentID: comp.FeeComponentID,
		ClassFeeStructureAmount:         d("1000"),
		ClassFeeStructureFrequency:      structmodel.FeeFrequencyMonthly,
		ClassFeeStructureIsMandatory:    true,
		ClassFeeStructureIsActive:       true,
	}
	require.NoError(t, db.Create(&cfs).Error)
	f.structID = cfs.ClassFeeStructureID

	busComp := compmodel.FeeComponent{
		FeeComponentTenantID: f.tenantID,
		FeeComponentName:     "Bus Fee",
		FeeComponentCode:     "BUS",
		FeeComponentCategory: compmodel.FeeComponentCategoryTransport,
		FeeComponentIsActive: true,
	}
	require.NoError(t, db.Create(&busComp).Error)

	busCfs := structmodel.ClassFeeStructure{
		ClassFeeStructureTenantID:       f.tenantID,
		ClassFeeStructureAcademicYearID: year.AcademicYearID,
		ClassFeeStructureClassID:        class.ClassID,
		ClassFeeStructureFeeComponentID: busComp.FeeComponentID,
		ClassFeeStructureAmount:         d("300"),
		ClassFeeStructureFrequency:      structmodel.FeeFrequencyMonthly,
		ClassFeeStructureIsMandatory:    false,
		ClassFeeStructureIsActive:       true,
	}
	require.NoError(t, db.Create(&busCfs).Error)
	f.optStructID = busCfs.ClassFeeStructureID

	return f
}

func assignOne(t *testing.T, db *gorm.DB, f feeFixture) model.StudentFeeAssignment {
	t.Helper()
	res, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{AcademicYearID: f.yearID}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 1, res.AssignedCount)

	var a model.StudentFeeAssignment
	require.NoError(t, db.
		Where("student_fee_assignment_student_id = ?", f.studentID).
		First(&a).Error)
	return a
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

func TestAssignTemplateFees_SnapshotAndIdempotency(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	a := assignOne(t, db, f)
	require.True(t, d("1000").Equal(a.StudentFeeAssignmentBaseAmount))
	require.True(t, d("1000").Equal(a.StudentFeeAssignmentFinalAmount))
	require.Equal(t, model.FeeStatusUnpaid, a.StudentFeeAssignmentStatus)

	// Panggilan kedua: skip diam-diam, tidak ada duplikat.
	res, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{AcademicYearID: f.yearID}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 0, res.AssignedCount)
	require.Equal(t, 1, res.SkippedCount)

	var n int64
	require.NoError(t, db.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_student_id = ?", f.studentID).
		Count(&n).Error)
	require.EqualValues(t, 1, n)

	// Perubahan template TIDAK merambat ke snapshot yang sudah ada.
	require.NoError(t, db.Model(&structmodel.ClassFeeStructure{}).
		Where("class_fee_structure_id = ?", f.structID).
		Update("class_fee_structure_amount", d("2000")).Error)
	var after model.StudentFeeAssignment
	require.NoError(t, db.First(&after, "student_fee_assignment_id = ?", a.StudentFeeAssignmentID).Error)
	require.True(t, d("1000").Equal(after.StudentFeeAssignmentBaseAmount))
}

func TestAddDiscount_RecalcAndGuards(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	// 15% dari 1000 = 150; final 850, status tetap unpaid.
	_, updated, err := AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "Sibling Discount",
			DiscountCategory: "MASTER",
			DiscountType:     "percentage",
			DiscountValue:    d("15"),
		}, "ADMIN", &f.adminID)
	require.NoError(t, err)
	require.True(t, d("150").Equal(updated.StudentFeeAssignmentTotalDiscountAmount))
	require.True(t, d("850").Equal(updated.StudentFeeAssignmentFinalAmount))
	require.Equal(t, model.FeeStatusUnpaid, updated.StudentFeeAssignmentStatus)

	// 25% oleh role non-admin → Forbidden, total tidak berubah.
	_, _, err = AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "Big Discount",
			DiscountCategory: "CUSTOM",
			DiscountType:     "percentage",
			DiscountValue:    d("25"),
		}, "TEACHER", &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))

	// Total diskon tidak boleh melewati base.
	_, _, err = AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "Over",
			DiscountCategory: "CUSTOM",
			DiscountType:     "fixed",
			DiscountValue:    d("900"),
		}, "ADMIN", &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestRecordPayment_StatusAndOverpayment(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	// Bayar 400 dari 1000 → partial.
	_, updated, err := RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("400"), PaymentMode: "CASH"}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, model.FeeStatusPartial, updated.StudentFeeAssignmentStatus)

	// Sisa 600; bayar 700 → overpayment ditolak.
	_, _, err = RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("700"), PaymentMode: "UPI"}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	// Lunasi sisa 600 → paid; pembayaran berikutnya ditolak (saldo 0).
	_, updated, err = RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("600"), PaymentMode: "BANK"}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, model.FeeStatusPaid, updated.StudentFeeAssignmentStatus)

	_, _, err = RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("1"), PaymentMode: "CASH"}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestDeactivateDiscount_RecomputesBalance(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	disc, _, err := AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "Scholarship",
			DiscountCategory: "MASTER",
			DiscountType:     "fixed",
			DiscountValue:    d("150"),
		}, "ADMIN", &f.adminID)
	require.NoError(t, err)

	_, updated, err := RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("400"), PaymentMode: "CARD"}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, model.FeeStatusPartial, updated.StudentFeeAssignmentStatus)

	// Cabut diskon 150: final kembali 1000, bayaran 400 tetap → partial.
	_, updated, err = DeactivateDiscount(db, f.tenantID, disc.StudentFeeDiscountID, &f.adminID)
	require.NoError(t, err)
	require.True(t, d("0").Equal(updated.StudentFeeAssignmentTotalDiscountAmount))
	require.True(t, d("1000").Equal(updated.StudentFeeAssignmentFinalAmount))
	require.Equal(t, model.FeeStatusPartial, updated.StudentFeeAssignmentStatus)

	history, err := GetPaymentHistory(db, f.tenantID, f.studentID, &f.yearID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.True(t, d("400").Equal(history[0].Amount))
}

func TestGetFeeReport_BalancePerAssignment(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	_, _, err := RecordPayment(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.PaymentCreateDTO{Amount: d("400"), PaymentMode: "CASH"}, &f.adminID)
	require.NoError(t, err)

	rows, err := GetFeeReport(db, f.tenantID, f.yearID, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Tuition Fee", rows[0].FeeName)
	require.True(t, d("400").Equal(rows[0].AmountPaid))
	require.True(t, d("600").Equal(rows[0].Balance))
	require.Equal(t, string(model.FeeStatusPartial), rows[0].Status)

	// Filter status tak dikenal ditolak.
	bad := "refunded"
	_, err = GetFeeReport(db, f.tenantID, f.yearID, nil, &bad)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestFeeMutationsWriteAuditRows(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	_, _, err := AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "Early Bird",
			DiscountCategory: "CUSTOM",
			DiscountType:     "fixed",
			DiscountValue:    d("100"),
		}, "ADMIN", &f.adminID)
	require.NoError(t, err)

	// 1 CREATE assignment + 1 CREATE discount + 1 UPDATE assignment.
	var n int64
	require.NoError(t, db.Model(&auditmodel.FeeAuditLog{}).
		Where("fee_audit_log_tenant_id = ?", f.tenantID).
		Count(&n).Error)
	require.EqualValues(t, 3, n)
}

func TestAssignTemplateFees_OptionalSelection(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	res, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.optStructID},
			},
		}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 2, res.AssignedCount)
	require.Equal(t, 0, res.SkippedCount)

	var opt model.StudentFeeAssignment
	require.NoError(t, db.
		Where("student_fee_assignment_class_fee_structure_id = ?", f.optStructID).
		First(&opt).Error)
	require.Equal(t, model.FeeSourceTemplate, opt.StudentFeeAssignmentSourceType)
	require.True(t, d("300").Equal(opt.StudentFeeAssignmentBaseAmount))
	require.True(t, d("300").Equal(opt.StudentFeeAssignmentFinalAmount))
	require.False(t, opt.StudentFeeAssignmentIsMandatory)

	// Assign ulang dengan seleksi yang sama: dua-duanya skip.
	res, err = AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.optStructID},
			},
		}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 0, res.AssignedCount)
	require.Equal(t, 2, res.SkippedCount)
}

func TestAssignTemplateFees_OptionalOverrideApplied(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	override := d("250")
	res, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.optStructID, OverrideAmount: &override},
			},
		}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 2, res.AssignedCount)

	// Override hanya kena baris opsional; base wajib tetap dari template.
	var opt model.StudentFeeAssignment
	require.NoError(t, db.
		Where("student_fee_assignment_class_fee_structure_id = ?", f.optStructID).
		First(&opt).Error)
	require.True(t, d("250").Equal(opt.StudentFeeAssignmentBaseAmount))

	var mand model.StudentFeeAssignment
	require.NoError(t, db.
		Where("student_fee_assignment_class_fee_structure_id = ?", f.structID).
		First(&mand).Error)
	require.True(t, d("1000").Equal(mand.StudentFeeAssignmentBaseAmount))
}

func TestAssignTemplateFees_SelectionGuards(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	// Override negatif ditolak, dan tidak ada baris yang tertulis.
	neg := d("-1")
	_, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.optStructID, OverrideAmount: &neg},
			},
		}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	// Template wajib tidak boleh masuk seleksi.
	_, err = AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.structID},
			},
		}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	// Template di luar kelas/tahun siswa ditolak.
	_, err = AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: uuid.New()},
			},
		}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	var n int64
	require.NoError(t, db.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_student_id = ?", f.studentID).
		Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestAssignTemplateFees_IgnoresInactiveTemplate(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	require.NoError(t, db.Model(&structmodel.ClassFeeStructure{}).
		Where("class_fee_structure_id = ?", f.optStructID).
		Update("class_fee_structure_is_active", false).Error)

	// Template nonaktif tidak bisa dipilih lagi.
	_, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{
			AcademicYearID: f.yearID,
			OptionalSelections: []dto.OptionalFeeSelectionDTO{
				{ClassFeeStructureID: f.optStructID},
			},
		}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	// Tanpa seleksi: hanya template wajib yang masih aktif yang di-assign.
	res, err := AssignTemplateFees(db, f.tenantID, f.studentID,
		dto.AssignTemplateFeesDTO{AcademicYearID: f.yearID}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, 1, res.AssignedCount)
}

func TestAddCustomFee_SnapshotAndAudit(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)

	reason := "library book replacement"
	a, err := AddCustomFee(db, f.tenantID, f.studentID,
		dto.CustomFeeCreateDTO{
			AcademicYearID: f.yearID,
			CustomName:     "Library Fine",
			Amount:         d("450"),
			Reason:         &reason,
		}, &f.adminID)
	require.NoError(t, err)
	require.Equal(t, model.FeeSourceCustom, a.StudentFeeAssignmentSourceType)
	require.Nil(t, a.StudentFeeAssignmentClassFeeStructureID)
	require.NotNil(t, a.StudentFeeAssignmentCustomName)
	require.Equal(t, "Library Fine", *a.StudentFeeAssignmentCustomName)
	require.True(t, d("450").Equal(a.StudentFeeAssignmentBaseAmount))
	require.True(t, d("450").Equal(a.StudentFeeAssignmentFinalAmount))
	require.Equal(t, model.FeeStatusUnpaid, a.StudentFeeAssignmentStatus)
	require.False(t, a.StudentFeeAssignmentIsMandatory)

	var n int64
	require.NoError(t, db.Model(&auditmodel.FeeAuditLog{}).
		Where("fee_audit_log_reference_table = ?", "student_fee_assignments").
		Where("fee_audit_log_reference_id = ?", a.StudentFeeAssignmentID).
		Where("fee_audit_log_action_type = ?", auditmodel.FeeAuditActionCreate).
		Count(&n).Error)
	require.EqualValues(t, 1, n)

	// Nominal negatif ditolak.
	_, err = AddCustomFee(db, f.tenantID, f.studentID,
		dto.CustomFeeCreateDTO{
			AcademicYearID: f.yearID,
			CustomName:     "Bad Fee",
			Amount:         d("-10"),
		}, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestDeactivateDiscount_RepeatRejected(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	disc, _, err := AddDiscount(db, f.tenantID, a.StudentFeeAssignmentID,
		dto.DiscountCreateDTO{
			DiscountName:     "One Off",
			DiscountCategory: "CUSTOM",
			DiscountType:     "fixed",
			DiscountValue:    d("100"),
		}, "ADMIN", &f.adminID)
	require.NoError(t, err)

	_, _, err = DeactivateDiscount(db, f.tenantID, disc.StudentFeeDiscountID, &f.adminID)
	require.NoError(t, err)

	// Ulangan mendarat di guard is_active, bukan audit kedua.
	_, _, err = DeactivateDiscount(db, f.tenantID, disc.StudentFeeDiscountID, &f.adminID)
	require.Error(t, err)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	var n int64
	require.NoError(t, db.Model(&auditmodel.FeeAuditLog{}).
		Where("fee_audit_log_reference_table = ?", "student_fee_discounts").
		Where("fee_audit_log_reference_id = ?", disc.StudentFeeDiscountID).
		Where("fee_audit_log_action_type = ?", auditmodel.FeeAuditActionDeactivate).
		Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestAssignTemplateFees_DuplicateActiveRowBlocked(t *testing.T) {
	db := openTestDB(t)
	f := seedFeeFixture(t, db)
	a := assignOne(t, db, f)

	// Index unik parsial menutup celah dua request assign berbarengan:
	// insert duplikat aktif langsung ditolak database.
	structureID := *a.StudentFeeAssignmentClassFeeStructureID
	dup := model.StudentFeeAssignment{
		StudentFeeAssignmentTenantID:            f.tenantID,
		StudentFeeAssignmentStudentID:           f.studentID,
		StudentFeeAssignmentAcademicYearID:      f.yearID,
		StudentFeeAssignmentSourceType:          model.FeeSourceTemplate,
		StudentFeeAssignmentClassFeeStructureID: &structureID,
		StudentFeeAssignmentBaseAmount:          d("1000"),
		StudentFeeAssignmentFinalAmount:         d("1000"),
		StudentFeeAssignmentStatus:              model.FeeStatusUnpaid,
		StudentFeeAssignmentIsMandatory:         true,
		StudentFeeAssignmentIsActive:            true,
	}
	err := db.Create(&dup).Error
	require.Error(t, err)
	require.True(t, helper.IsUniqueViolation(err))

	// Baris nonaktif tidak kena index; riwayat lama boleh tinggal.
	dup.StudentFeeAssignmentID = uuid.Nil
	dup.StudentFeeAssignmentIsActive = false
	require.NoError(t, db.Create(&dup).Error)
}
