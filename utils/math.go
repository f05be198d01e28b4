package utils

import (
	"errors"
	"math"
)

// ErrShapeMismatch is returned when parallel input series have unequal
// lengths.
var ErrShapeMismatch = errors.New("parallel series must have the same length")

// Truncate cuts val toward zero at the given number of decimal places.
// ANBIMA pricing mandates truncation (not rounding) for business-year
// fractions and final prices; Truncate(Truncate(x, n), n) == Truncate(x, n).
func Truncate(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Trunc(val*pow) / pow
}

// RoundTo rounds val half-to-even at the given number of decimal places,
// matching the rounding used by the reference pricing methodology for
// discounted cash flows.
func RoundTo(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.RoundToEven(val*pow) / pow
}

// PresentValue discounts each cash flow at its own annual rate over the
// corresponding period in years and returns the sum. Empty inputs yield 0.
func PresentValue(cashFlows, rates, periods []float64) (float64, error) {
	if len(cashFlows) == 0 || len(rates) == 0 || len(periods) == 0 {
		return 0, nil
	}
	if len(cashFlows) != len(rates) || len(cashFlows) != len(periods) {
		return 0, ErrShapeMismatch
	}
	pv := 0.0
	for i, cf := range cashFlows {
		pv += cf / math.Pow(1+rates[i], periods[i])
	}
	return pv, nil
}
