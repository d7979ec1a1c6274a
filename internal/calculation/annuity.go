package calculation

import (
	"github.com/shopspring/decimal"
)

// PVAnnuity returns the present value of an annual payment stream:
// amount * (1 - (1+r)^-n) / r. A non-positive term is worth nothing, and a
// non-positive rate degrades to the undiscounted sum.
func PVAnnuity(annualAmount decimal.Decimal, years int, rate decimal.Decimal) decimal.Decimal {
	if years <= 0 {
		return decimal.Zero
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return annualAmount.Mul(decimal.NewFromInt(int64(years)))
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
	discount := decimal.NewFromInt(1).Sub(decimal.NewFromInt(1).Div(growth))
	return annualAmount.Mul(discount).Div(rate)
}

// FVLumpSum compounds a present balance forward: amount * (1+r)^n.
func FVLumpSum(amount decimal.Decimal, years int, rate decimal.Decimal) decimal.Decimal {
	if years <= 0 {
		return amount
	}
	return amount.Mul(decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years))))
}

// FVAnnuity returns the future value of an annual contribution stream:
// amount * ((1+r)^n - 1) / r.
func FVAnnuity(annualAmount decimal.Decimal, years int, rate decimal.Decimal) decimal.Decimal {
	if years <= 0 {
		return decimal.Zero
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return annualAmount.Mul(decimal.NewFromInt(int64(years)))
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
	return annualAmount.Mul(growth.Sub(decimal.NewFromInt(1))).Div(rate)
}
