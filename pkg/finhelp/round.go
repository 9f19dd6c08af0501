package finhelp

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary value to cents
func RoundMoney(value float64) float64 {
	return roundTo(value, 2)
}

// RoundPercent rounds a percentage to one decimal place
func RoundPercent(value float64) float64 {
	return roundTo(value, 1)
}

// FormatMoney renders a monetary value with exactly two decimals
func FormatMoney(value float64) string {
	if !isFinite(value) {
		return "0.00"
	}
	return decimal.NewFromFloat(value).StringFixed(2)
}

func roundTo(value float64, places int32) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
