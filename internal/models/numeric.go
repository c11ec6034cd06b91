package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumericOrZero converts s to a float64. Anything that is not a finite
// number (empty, malformed, NaN, ±Inf) yields 0.
func ParseNumericOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RoundTo rounds v to the given number of decimal places. Negative zero is
// normalized to zero.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
