package disability

import (
	"github.com/shopspring/decimal"
)

// 2026 SSDI bend points and benefit factors.
var (
	bendPoint1 = decimal.NewFromInt(1286)
	bendPoint2 = decimal.NewFromInt(7749)
	factor1    = decimal.NewFromFloat(0.90)
	factor2    = decimal.NewFromFloat(0.32)
	factor3    = decimal.NewFromFloat(0.15)
)

// CalculateSSDIPIA2026 computes the 2026 Primary Insurance Amount for the
// given Average Indexed Monthly Earnings using the Social Security
// bend-point formula. The result is truncated down to the next lower dime,
// per SSA rounding rules.
func CalculateSSDIPIA2026(aime decimal.Decimal) decimal.Decimal {
	if aime.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var pia decimal.Decimal
	switch {
	case aime.LessThanOrEqual(bendPoint1):
		pia = aime.Mul(factor1)
	case aime.LessThanOrEqual(bendPoint2):
		pia = bendPoint1.Mul(factor1).
			Add(aime.Sub(bendPoint1).Mul(factor2))
	default:
		pia = bendPoint1.Mul(factor1).
			Add(bendPoint2.Sub(bendPoint1).Mul(factor2)).
			Add(aime.Sub(bendPoint2).Mul(factor3))
	}

	// Truncate, never round: floor(pia * 10) / 10.
	return pia.Mul(decimal.NewFromInt(10)).Floor().Div(decimal.NewFromInt(10))
}
