package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/utils"
)

// Business-year fractions are truncated to 14 decimals and final prices
// and quotations to the per-type precision below, as mandated by the
// ANBIMA methodology. Truncation (toward zero), not rounding, is what
// makes results bit-reproducible against the published reference values.
const (
	byearsPrecision    = 14
	pricePrecision     = 6
	quotationPrecision = 4
)

// Price returns the ANBIMA price of a fixed-rate bond (LTN or NTN-F) on a
// 1000 face value, discounted at the yield to maturity rate.
func Price(t Type, settlement, maturity time.Time, rate float64) (float64, error) {
	switch t {
	case LTN:
		if err := checkDateOrder(t, settlement, maturity); err != nil {
			return 0, err
		}
		bdays := calendar.Count(settlement, maturity)
		byears := utils.Truncate(float64(bdays)/252, byearsPrecision)
		discount := math.Pow(1+rate, byears)
		return utils.Truncate(FaceValue/discount, pricePrecision), nil

	case NTNF:
		flows, err := CashFlows(t, settlement, maturity)
		if err != nil {
			return 0, err
		}
		sum := 0.0
		for _, cf := range flows {
			bdays := calendar.Count(settlement, cf.PaymentDate)
			byears := utils.Truncate(float64(bdays)/252, byearsPrecision)
			discount := math.Pow(1+rate, byears)
			// NTN-F discounted flows are rounded to 9 decimals before the
			// sum, per the reference methodology.
			sum += utils.RoundTo(cf.Amount/discount, 9)
		}
		return utils.Truncate(sum, pricePrecision), nil

	default:
		return 0, fmt.Errorf("Price: %s is priced through its quotation, not directly", t)
	}
}

// Quotation returns the base-100 ANBIMA quotation of an indexed bond
// (NTN-B, NTN-C or LFT), discounted at the yield rate over the bond's
// quotation-term cash flows.
func Quotation(t Type, settlement, maturity time.Time, rate float64) (float64, error) {
	switch t {
	case NTNB, NTNC:
		flows, err := CashFlows(t, settlement, maturity)
		if err != nil {
			return 0, err
		}
		sum := 0.0
		for _, cf := range flows {
			bdays := calendar.Count(settlement, cf.PaymentDate)
			byears := utils.Truncate(float64(bdays)/252, byearsPrecision)
			discount := math.Pow(1+rate, byears)
			sum += utils.RoundTo(cf.Amount/discount, 10)
		}
		return utils.Truncate(sum, quotationPrecision), nil

	case LFT:
		if err := checkDateOrder(t, settlement, maturity); err != nil {
			return 0, err
		}
		bdays := calendar.Count(settlement, maturity)
		byears := utils.Truncate(float64(bdays)/252, byearsPrecision)
		discount := 1 / math.Pow(1+rate, byears)
		return utils.Truncate(100*discount, quotationPrecision), nil

	default:
		return 0, fmt.Errorf("Quotation: %s has no base-100 quotation", t)
	}
}

// QuotationB1 returns the NTN-B1 quotation as a fraction of the updated
// nominal value, truncated to 6 decimals.
func QuotationB1(name CommercialName, settlement, maturity time.Time, rate float64) (float64, error) {
	flows, err := AmortizationCashFlows(name, settlement, maturity)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, cf := range flows {
		bdays := calendar.Count(settlement, cf.PaymentDate)
		byears := utils.Truncate(float64(bdays)/252, byearsPrecision)
		discount := math.Pow(1+rate, byears)
		sum += utils.RoundTo(cf.Amount/discount, 10)
	}
	return utils.Truncate(sum, pricePrecision), nil
}

// PriceFromQuotation scales a base-100 quotation into a currency price
// using the updated nominal value (VNA), truncated to 6 decimals.
func PriceFromQuotation(vna, quotation float64) float64 {
	return utils.Truncate(vna*quotation/100, pricePrecision)
}

// PriceB1 scales an NTN-B1 fractional quotation into a currency price.
func PriceB1(vna, quotation float64) float64 {
	return utils.Truncate(vna*quotation, pricePrecision)
}

func checkDateOrder(t Type, settlement, maturity time.Time) error {
	if !maturity.After(settlement) {
		return fmt.Errorf("%s: settlement %s, maturity %s: %w",
			t, settlement.Format("2006-01-02"), maturity.Format("2006-01-02"), ErrInvalidDateOrder)
	}
	return nil
}
