// Package money holds the rounding and summing rules shared by every cost
// calculation. Amounts are float64 at the API boundary but all rounding and
// totals go through decimal so 2dp values add up exactly.
package money

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Sum adds amounts in decimal arithmetic.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// ApplyRate returns round2(base * ratePercent / 100).
func ApplyRate(base, ratePercent float64) float64 {
	d := decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(ratePercent)).Div(decimal.NewFromInt(100))
	return d.Round(2).InexactFloat64()
}
