package bond

import (
	"math"
	"time"

	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/utils"
)

// Duration returns the Macaulay duration of a bond in business years,
// discounting its cash flows at the single yield to maturity rate.
func Duration(t Type, settlement, maturity time.Time, rate float64) (float64, error) {
	flows, err := CashFlows(t, settlement, maturity)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(rate) {
		return math.NaN(), nil
	}
	var pvSum, weighted float64
	for _, cf := range flows {
		byears := float64(calendar.Count(settlement, cf.PaymentDate)) / 252
		pv := cf.Amount / math.Pow(1+rate, byears)
		pvSum += pv
		weighted += pv * byears
	}
	return weighted / pvSum, nil
}

// DurationB1 returns the NTN-B1 Macaulay duration in business years,
// truncated to 14 decimals for reproducibility.
func DurationB1(name CommercialName, settlement, maturity time.Time, rate float64) (float64, error) {
	flows, err := AmortizationCashFlows(name, settlement, maturity)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(rate) {
		return math.NaN(), nil
	}
	var pvSum, weighted float64
	for _, cf := range flows {
		byears := float64(calendar.Count(settlement, cf.PaymentDate)) / 252
		pv := cf.Amount / math.Pow(1+rate, byears)
		pvSum += pv
		weighted += pv * byears
	}
	return utils.Truncate(weighted/pvSum, 14), nil
}

// DV01 returns the price drop of a fixed-rate bond (LTN or NTN-F) for a
// 1 basis point increase in yield. It is a finite difference of the
// truncated ANBIMA prices, not a closed-form derivative, so it stays
// consistent with the discrete rounding rules.
func DV01(t Type, settlement, maturity time.Time, rate float64) (float64, error) {
	p1, err := Price(t, settlement, maturity, rate)
	if err != nil {
		return 0, err
	}
	p2, err := Price(t, settlement, maturity, rate+0.0001)
	if err != nil {
		return 0, err
	}
	return p1 - p2, nil
}

// DV01FromVNA returns the currency DV01 of an indexed coupon bond (NTN-B
// or NTN-C) by shocking its quotation and scaling through the VNA.
func DV01FromVNA(t Type, settlement, maturity time.Time, rate, vna float64) (float64, error) {
	q1, err := Quotation(t, settlement, maturity, rate)
	if err != nil {
		return 0, err
	}
	q2, err := Quotation(t, settlement, maturity, rate+0.0001)
	if err != nil {
		return 0, err
	}
	return PriceFromQuotation(vna, q1) - PriceFromQuotation(vna, q2), nil
}

// DV01B1 returns the currency DV01 of an NTN-B1 bond.
func DV01B1(name CommercialName, settlement, maturity time.Time, rate, vna float64) (float64, error) {
	q1, err := QuotationB1(name, settlement, maturity, rate)
	if err != nil {
		return 0, err
	}
	q2, err := QuotationB1(name, settlement, maturity, rate+0.0001)
	if err != nil {
		return 0, err
	}
	return PriceB1(vna, q1) - PriceB1(vna, q2), nil
}

// PremiumLTN returns the premium of an LTN yield over the DI futures rate
// for the same maturity, as a ratio of daily factors.
func PremiumLTN(ltnRate, diRate float64) float64 {
	ltnFactor := math.Pow(1+ltnRate, 1.0/252)
	diFactor := math.Pow(1+diRate, 1.0/252)
	return (ltnFactor - 1) / (diFactor - 1)
}

// PremiumLFT returns the premium of an LFT spread-over-Selic rate against
// the DI futures rate interpolated to the same maturity.
func PremiumLFT(lftRate, diRate float64) float64 {
	lftFactor := math.Pow(1+lftRate, 1.0/252)
	diFactor := math.Pow(1+diRate, 1.0/252)
	return (lftFactor*diFactor - 1) / (diFactor - 1)
}
