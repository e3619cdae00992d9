package utils

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds d to two places with banker's rounding, the way amounts are
// displayed.
func Round2(d decimal.Decimal) float64 {
	return d.RoundBank(2).InexactFloat64()
}

// Percent returns part/whole*100 rounded to two places, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))))
}

// PercentDecimal is Percent over amounts.
func PercentDecimal(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return Round2(part.Mul(hundred).Div(whole))
}

// PercentInt is PercentDecimal rounded half away from zero to a whole
// number.
func PercentInt(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(whole).Round(0).IntPart())
}

// Ratio returns part/whole rounded to four places, or 0 when whole is 0.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(whole))).RoundBank(4).InexactFloat64()
}

// Average returns sum/count rounded to two places, or 0 when count is 0.
func Average(sum decimal.Decimal, count int) float64 {
	if count == 0 {
		return 0
	}
	return Round2(sum.Div(decimal.NewFromInt(int64(count))))
}
