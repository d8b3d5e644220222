package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/student_fees/model"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateDiscountAmount(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		dType model.FeeDiscountType
		value string
		want  string
	}{
		{"fixed nominal apa adanya", "1000", model.FeeDiscountTypeFixed, "150", "150"},
		{"persen 15 dari 1000", "1000", model.FeeDiscountTypePercentage, "15", "150"},
		{"persen 25 dari 1000", "1000", model.FeeDiscountTypePercentage, "25", "250"},
		{"persen dengan pembulatan", "999.99", model.FeeDiscountTypePercentage, "33", "330"},
		{"persen 100", "850", model.FeeDiscountTypePercentage, "100", "850"},
		{"nol", "1000", model.FeeDiscountTypePercentage, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDiscountAmount(d(tt.base), tt.dType, d(tt.value))
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculateDiscountAmount_PercentageFromBaseNotCompounding(t *testing.T) {
	// Dua diskon 10% atas base 1000 masing-masing 100, bukan 100 lalu 90.
	base := d("1000")
	first := CalculateDiscountAmount(base, model.FeeDiscountTypePercentage, d("10"))
	second := CalculateDiscountAmount(base, model.FeeDiscountTypePercentage, d("10"))
	assert.True(t, d("100").Equal(first))
	assert.True(t, d("100").Equal(second))
}

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name         string
		base         string
		discounts    []string
		paid         string
		wantDiscount string
		wantFinal    string
		wantStatus   model.FeePaymentStatus
	}{
		{
			name: "baru di-assign, belum ada apa-apa",
			base: "1000", discounts: nil, paid: "0",
			wantDiscount: "0", wantFinal: "1000", wantStatus: model.FeeStatusUnpaid,
		},
		{
			name: "diskon 150, belum bayar",
			base: "1000", discounts: []string{"150"}, paid: "0",
			wantDiscount: "150", wantFinal: "850", wantStatus: model.FeeStatusUnpaid,
		},
		{
			name: "lunas pas",
			base: "1000", discounts: []string{"150"}, paid: "850",
			wantDiscount: "150", wantFinal: "850", wantStatus: model.FeeStatusPaid,
		},
		{
			name: "bayar sebagian",
			base: "1000", discounts: nil, paid: "400",
			wantDiscount: "0", wantFinal: "1000", wantStatus: model.FeeStatusPartial,
		},
		{
			name: "diskon dicabut, bayaran lama tetap dihitung",
			base: "1000", discounts: nil, paid: "400",
			wantDiscount: "0", wantFinal: "1000", wantStatus: model.FeeStatusPartial,
		},
		{
			name: "beberapa diskon dijumlah",
			base: "1000", discounts: []string{"150", "100", "50"}, paid: "0",
			wantDiscount: "300", wantFinal: "700", wantStatus: model.FeeStatusUnpaid,
		},
		{
			name: "diskon melebihi base di-clamp ke nol",
			base: "500", discounts: []string{"400", "300"}, paid: "0",
			wantDiscount: "700", wantFinal: "0", wantStatus: model.FeeStatusPaid,
		},
		{
			name: "dibebaskan penuh = paid tanpa pembayaran",
			base: "1000", discounts: []string{"1000"}, paid: "0",
			wantDiscount: "1000", wantFinal: "0", wantStatus: model.FeeStatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := RecalcInput{
				BaseAmount: d(tt.base),
				TotalPaid:  d(tt.paid),
			}
			for _, s := range tt.discounts {
				in.ActiveDiscounts = append(in.ActiveDiscounts, d(s))
			}

			got := Recalculate(in)
			assert.True(t, d(tt.wantDiscount).Equal(got.TotalDiscount), "total_discount: want %s got %s", tt.wantDiscount, got.TotalDiscount)
			assert.True(t, d(tt.wantFinal).Equal(got.FinalAmount), "final_amount: want %s got %s", tt.wantFinal, got.FinalAmount)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	in := RecalcInput{
		BaseAmount:      d("1000"),
		ActiveDiscounts: []decimal.Decimal{d("150")},
		TotalPaid:       d("400"),
	}
	first := Recalculate(in)
	second := Recalculate(in)
	assert.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
	assert.True(t, first.FinalAmount.Equal(second.FinalAmount))
	assert.Equal(t, first.Status, second.Status)
}
