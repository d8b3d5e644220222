package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/fee_components/model"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "TUITION", NormalizeCode("  tuition "))
	assert.Equal(t, "BUS-01", NormalizeCode("bus-01"))

	long := strings.Repeat("x", 60)
	assert.Len(t, NormalizeCode(long), 50)
}

func TestFeeComponentCreateDTO_ToModelDefaults(t *testing.T) {
	tenantID := uuid.New()
	in := FeeComponentCreateDTO{
		FeeComponentName:     "  Tuition Fee ",
		FeeComponentCode:     "tuition",
		FeeComponentCategory: "ACADEMIC",
	}

	m := in.ToModel(tenantID)
	assert.Equal(t, tenantID, m.FeeComponentTenantID)
	assert.Equal(t, "Tuition Fee", m.FeeComponentName)
	assert.Equal(t, "TUITION", m.FeeComponentCode)
	assert.Equal(t, model.FeeComponentCategoryAcademic, m.FeeComponentCategory)
	// default: boleh diskon, wajib, aktif
	assert.True(t, m.FeeComponentAllowDiscount)
	assert.True(t, m.FeeComponentIsMandatoryDefault)
	assert.True(t, m.FeeComponentIsActive)
}

func TestFeeComponentCreateDTO_ToModelOverrides(t *testing.T) {
	no := false
	desc := "  antar jemput  "
	in := FeeComponentCreateDTO{
		FeeComponentName:          "Bus Fee",
		FeeComponentCode:          "bus",
		FeeComponentCategory:      "TRANSPORT",
		FeeComponentAllowDiscount: &no,
		FeeComponentDescription:   &desc,
	}

	m := in.ToModel(uuid.New())
	assert.False(t, m.FeeComponentAllowDiscount)
	assert.NotNil(t, m.FeeComponentDescription)
	assert.Equal(t, "antar jemput", *m.FeeComponentDescription)
}

func TestApplyFeeComponentUpdate_PartialOnly(t *testing.T) {
	m := model.FeeComponent{
		FeeComponentName:          "Tuition Fee",
		FeeComponentCode:          "TUITION",
		FeeComponentCategory:      model.FeeComponentCategoryAcademic,
		FeeComponentAllowDiscount: true,
	}

	newName := "Tuition"
	ApplyFeeComponentUpdate(&m, FeeComponentUpdateDTO{FeeComponentName: &newName})

	assert.Equal(t, "Tuition", m.FeeComponentName)
	// field lain tidak tersentuh
	assert.Equal(t, "TUITION", m.FeeComponentCode)
	assert.Equal(t, model.FeeComponentCategoryAcademic, m.FeeComponentCategory)
	assert.True(t, m.FeeComponentAllowDiscount)
}
