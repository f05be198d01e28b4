package bond

import (
	"fmt"
	"time"

	"github.com/pmfaria/brfi/utils"
)

// CheckMaturity validates that maturity falls on the bond type's coupon
// day and month calendar. Types without a fixed calendar always pass.
func CheckMaturity(t Type, maturity time.Time) error {
	day := t.CouponDay()
	if day != 0 && maturity.Day() != day {
		return fmt.Errorf("%s maturity %s: %w", t, maturity.Format("2006-01-02"), ErrInvalidMaturityDate)
	}
	months := t.CouponMonths()
	if len(months) == 0 {
		return nil
	}
	for _, m := range months {
		if maturity.Month() == m {
			return nil
		}
	}
	return fmt.Errorf("%s maturity %s: %w", t, maturity.Format("2006-01-02"), ErrInvalidMaturityDate)
}

// PaymentDates generates the remaining coupon dates between settlement
// (exclusive) and maturity (inclusive), stepping backward from maturity
// by the bond's payment period. Zero-coupon types yield the maturity
// alone.
func PaymentDates(t Type, settlement, maturity time.Time) ([]time.Time, error) {
	if err := CheckMaturity(t, maturity); err != nil {
		return nil, err
	}
	if !maturity.After(settlement) {
		return nil, fmt.Errorf("%s: settlement %s, maturity %s: %w",
			t, settlement.Format("2006-01-02"), maturity.Format("2006-01-02"), ErrInvalidDateOrder)
	}
	if t.IsZeroCoupon() {
		return []time.Time{maturity}, nil
	}

	period := t.PeriodMonths()
	var dates []time.Time
	for d := maturity; d.After(settlement); d = utils.AddMonths(d, -period) {
		dates = append(dates, d)
	}
	// Collected newest-first; reverse into ascending order.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates, nil
}

// CashFlows generates the coupon and redemption cash flows between
// settlement (exclusive) and maturity (inclusive). LTN yields a single
// face-value payment; NTN-F flows are in currency units on a 1000 face;
// NTN-B and NTN-C flows are in base-100 quotation terms. LFT yields a
// single base-100 redemption (its price is VNA-driven, see Quotation).
func CashFlows(t Type, settlement, maturity time.Time) ([]Cashflow, error) {
	dates, err := PaymentDates(t, settlement, maturity)
	if err != nil {
		return nil, err
	}

	coupon, final := paymentAmounts(t, maturity)
	flows := make([]Cashflow, len(dates))
	for i, d := range dates {
		amount := coupon
		if d.Equal(maturity) {
			amount = final
		}
		flows[i] = Cashflow{PaymentDate: d, Amount: amount}
	}
	return flows, nil
}

func paymentAmounts(t Type, maturity time.Time) (coupon, final float64) {
	switch t {
	case NTNF:
		return ntnfCouponPmt, ntnfFinalPmt
	case NTNB:
		return ntnbCouponPmt, ntnbFinalPmt
	case NTNC:
		if maturity.Year() == 2031 {
			return ntncCouponPmt2031, ntncFinalPmt2031
		}
		return ntncCouponPmt, ntncFinalPmt
	case LTN:
		return 0, FaceValue
	default: // LFT redeems at its base-100 quotation value
		return 0, 100
	}
}

// AmortizationCashFlows generates the NTN-B1 monthly amortization flows
// between settlement (exclusive) and maturity (inclusive). Amounts are
// fractions of the updated nominal value: 1/n per month with the residual
// on the final payment, n being 240 (Renda+) or 60 (Educa+). Payments run
// monthly on day 15, backward from the maturity month.
func AmortizationCashFlows(name CommercialName, settlement, maturity time.Time) ([]Cashflow, error) {
	if !maturity.After(settlement) {
		return nil, fmt.Errorf("NTN-B1: settlement %s, maturity %s: %w",
			settlement.Format("2006-01-02"), maturity.Format("2006-01-02"), ErrInvalidDateOrder)
	}

	n := name.numPayments()
	perPayment := 1.0 / float64(n)
	finalPayment := 1 - perPayment*float64(n-1)

	last := time.Date(maturity.Year(), maturity.Month(), 15, 0, 0, 0, 0, time.UTC)
	var flows []Cashflow
	for i := 0; i < n; i++ {
		d := utils.AddMonths(last, -i)
		if !d.After(settlement) {
			break
		}
		amount := perPayment
		if i == 0 {
			amount = finalPayment
		}
		flows = append(flows, Cashflow{PaymentDate: d, Amount: amount})
	}
	// Collected newest-first; reverse into ascending order.
	for i, j := 0, len(flows)-1; i < j; i, j = i+1, j-1 {
		flows[i], flows[j] = flows[j], flows[i]
	}
	return flows, nil
}
