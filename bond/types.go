// Package bond prices Brazilian Treasury bonds and derives spot-rate
// curves and risk metrics from them, following the ANBIMA pricing
// methodology ("Metodologias de Precificação de Títulos Públicos").
// Rates are decimals (0.12 = 12%), prices are in currency units and
// quotations are in base 100 unless noted otherwise.
package bond

import (
	"fmt"
	"time"
)

// Type is the closed set of Brazilian Treasury bond types.
type Type int

const (
	// LTN is the zero-coupon fixed-rate bond.
	LTN Type = iota
	// NTNF is the fixed-rate bond with 10% annual coupons paid semiannually.
	NTNF
	// NTNB is the IPCA-linked bond with 6% annual coupons paid semiannually.
	NTNB
	// NTNB1 is the IPCA-linked monthly-amortization bond (Renda+/Educa+).
	NTNB1
	// NTNC is the legacy IGP-M-linked coupon bond.
	NTNC
	// LFT is the Selic-indexed floating-rate bond.
	LFT
)

var typeNames = map[Type]string{
	LTN:   "LTN",
	NTNF:  "NTN-F",
	NTNB:  "NTN-B",
	NTNB1: "NTN-B1",
	NTNC:  "NTN-C",
	LFT:   "LFT",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType converts a market bond-type code ("LTN", "NTN-F", ...) to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if s == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("ParseType: unknown bond type %q", s)
}

// IsZeroCoupon reports whether the bond pays no intermediate coupons.
func (t Type) IsZeroCoupon() bool {
	return t == LTN || t == LFT
}

// PeriodMonths returns the payment periodicity in months, or 0 for
// single-payment bonds.
func (t Type) PeriodMonths() int {
	switch t {
	case NTNF, NTNB, NTNC:
		return 6
	case NTNB1:
		return 1
	default:
		return 0
	}
}

// CouponDay returns the fixed day of month on which the bond pays.
func (t Type) CouponDay() int {
	switch t {
	case NTNB, NTNB1:
		return 15
	case NTNF, NTNC:
		return 1
	default:
		return 0
	}
}

// CouponMonths returns the months in which a maturity (and therefore
// coupons) may fall, or nil when any month is valid.
func (t Type) CouponMonths() []time.Month {
	switch t {
	case NTNF:
		return []time.Month{time.January, time.July}
	case NTNC:
		return []time.Month{time.January, time.July}
	case NTNB:
		return []time.Month{time.February, time.May, time.August, time.November}
	default:
		return nil
	}
}

// Cashflow is a single dated cash payment for a bond. Amount is in
// currency units for LTN/NTN-F, in base-100 terms for NTN-B/NTN-C/LFT
// quotation flows, and a fraction of the updated nominal value for NTN-B1.
type Cashflow struct {
	PaymentDate time.Time
	Amount      float64
}

// Per-type payment constants as fixed by the ANBIMA methodology.
//
// The NTN-F semiannual coupon is 1000*((1.10)^0.5 - 1) rounded to 5
// decimals; NTN-B and NTN-C coupons are 100*((1.06)^0.5 - 1) rounded to 6
// decimals. NTN-C bonds maturing in 2031 carry a 12% coupon instead.
const (
	FaceValue = 1000.0

	ntnfCouponPmt = 48.80885
	ntnfFinalPmt  = 1048.80885

	ntnbCouponPmt = 2.956301
	ntnbFinalPmt  = 102.956301

	ntncCouponPmt     = 2.956301
	ntncFinalPmt      = 102.956301
	ntncCouponPmt2031 = 5.830052
	ntncFinalPmt2031  = 105.830052
)

// CommercialName distinguishes the two NTN-B1 amortization profiles.
type CommercialName int

const (
	// RendaMais amortizes over 240 monthly payments.
	RendaMais CommercialName = iota
	// EducaMais amortizes over 60 monthly payments.
	EducaMais
)

func (c CommercialName) numPayments() int {
	if c == EducaMais {
		return 60
	}
	return 240
}
