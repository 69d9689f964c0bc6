package utils

import (
	"math"
)

// RoundTo rounds a float to specified decimal places, halves away from zero
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Round2 rounds to cents
func Round2(value float64) float64 {
	return RoundTo(value, 2)
}

// IsFinite reports whether value is neither NaN nor infinite
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
