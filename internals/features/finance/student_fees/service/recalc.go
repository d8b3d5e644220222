package service

import (
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/student_fees/model"
)

/* =========================================================
   Recalculation engine — fungsi murni, deterministik.
   Semua angka uang dibulatkan ke 2 desimal (half-up).
========================================================= */

var hundred = decimal.NewFromInt(100)

// CalculateDiscountAmount membekukan nominal diskon saat apply:
// fixed = value apa adanya, percentage = base * value / 100.
// Persentase SELALU dihitung dari base_amount, bukan sisa setelah
// diskon lain, jadi beberapa diskon persen tidak saling compound.
func CalculateDiscountAmount(baseAmount decimal.Decimal, discountType model.FeeDiscountType, value decimal.Decimal) decimal.Decimal {
	if discountType == model.FeeDiscountTypePercentage {
		return baseAmount.Mul(value).Div(hundred).Round(2)
	}
	return value.Round(2)
}

type RecalcInput struct {
	BaseAmount      decimal.Decimal
	ActiveDiscounts []decimal.Decimal // calculated_amount diskon yang masih aktif
	TotalPaid       decimal.Decimal   // akumulasi pembayaran success
}

type RecalcResult struct {
	TotalDiscount decimal.Decimal
	FinalAmount   decimal.Decimal
	Status        model.FeePaymentStatus
}

// Recalculate menurunkan total_discount, final_amount, dan status
// dari ledger saat ini. Boleh dipanggil berapa kali pun dengan input
// sama tanpa mengubah hasil.
func Recalculate(in RecalcInput) RecalcResult {
	total := decimal.Zero
	for _, d := range in.ActiveDiscounts {
		total = total.Add(d)
	}
	total = total.Round(2)

	final := in.BaseAmount.Sub(total)
	if final.IsNegative() {
		final = decimal.Zero
	}
	final = final.Round(2)

	status := model.FeeStatusUnpaid
	switch {
	case in.TotalPaid.GreaterThanOrEqual(final):
		status = model.FeeStatusPaid
	case in.TotalPaid.IsPositive():
		status = model.FeeStatusPartial
	}

	return RecalcResult{
		TotalDiscount: total,
		FinalAmount:   final,
		Status:        status,
	}
}
