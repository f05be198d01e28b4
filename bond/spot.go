package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/interp"
	"github.com/pmfaria/brfi/utils"
)

// SpotRate is one vertex of a bootstrapped zero-coupon curve. Values are
// computed once per (settlement, input snapshot) and never mutated.
type SpotRate struct {
	MaturityDate time.Time
	BDays        int
	Rate         float64
}

// SpotRatesNTNF derives the zero-coupon (spot) curve for fixed-rate bonds
// by the bootstrap method. LTN yields are already spot rates, so vertices
// up to the last LTN maturity take the flat-forward-interpolated LTN rate
// directly; beyond it, each NTN-F vertex is solved by discounting its
// earlier coupons at the already-solved spot rates and backing the final
// payment's rate out of the ANBIMA price at the interpolated YTM.
//
// Vertices are visited in strictly ascending business-day order, which
// guarantees every earlier coupon date is solved before it is referenced.
// When showCoupons is false the result keeps only the input NTN-F
// maturities; the filter never affects the bootstrap numerics.
func SpotRatesNTNF(settlement time.Time, ltnMaturities []time.Time, ltnRates []float64,
	ntnfMaturities []time.Time, ntnfRates []float64, showCoupons bool) ([]SpotRate, error) {

	if len(ltnMaturities) == 0 || len(ntnfMaturities) == 0 {
		return nil, fmt.Errorf("SpotRatesNTNF: LTN and NTN-F inputs are required")
	}

	ltnInterp, err := newRateInterpolator(settlement, ltnMaturities, ltnRates)
	if err != nil {
		return nil, fmt.Errorf("SpotRatesNTNF: LTN curve: %w", err)
	}
	ntnfInterp, err := newRateInterpolator(settlement, ntnfMaturities, ntnfRates)
	if err != nil {
		return nil, fmt.Errorf("SpotRatesNTNF: NTN-F curve: %w", err)
	}

	lastLTN := maxDate(ltnMaturities)
	lastNTNF := maxDate(ntnfMaturities)

	// Every coupon date up to the longest maturity is a bootstrap vertex.
	vertices, err := PaymentDates(NTNF, settlement, lastNTNF)
	if err != nil {
		return nil, fmt.Errorf("SpotRatesNTNF: %w", err)
	}

	solved := make(map[time.Time]SpotRate, len(vertices))
	out := make([]SpotRate, 0, len(vertices))
	for _, mat := range vertices {
		bdays := calendar.Count(settlement, mat)
		byears := float64(bdays) / 252
		ytm := ntnfInterp.Rate(bdays)

		var spot float64
		switch {
		case !mat.After(lastLTN):
			// Zero-coupon territory: the LTN rate is the spot rate.
			spot = ltnInterp.Rate(bdays)

		default:
			couponDates, err := PaymentDates(NTNF, settlement, mat)
			if err != nil {
				return nil, fmt.Errorf("SpotRatesNTNF: %w", err)
			}
			if len(couponDates) == 1 {
				// Single remaining cash flow: spot rate is the YTM by definition.
				spot = ytm
				break
			}

			couponPV, err := presentValueAt(solved, couponDates[:len(couponDates)-1], ntnfCouponPmt)
			if err != nil {
				return nil, fmt.Errorf("SpotRatesNTNF: %w", err)
			}
			price, err := Price(NTNF, settlement, mat, ytm)
			if err != nil {
				return nil, fmt.Errorf("SpotRatesNTNF: %w", err)
			}
			priceFactor := ntnfFinalPmt / (price - couponPV)
			spot = math.Pow(priceFactor, 1/byears) - 1
		}

		node := SpotRate{MaturityDate: mat, BDays: bdays, Rate: spot}
		solved[mat] = node
		out = append(out, node)
	}

	if !showCoupons {
		out = filterMaturities(out, ntnfMaturities)
	}
	return out, nil
}

// SpotRatesNTNB derives the real (IPCA-linked) spot curve from NTN-B
// yields. All possible coupon dates (the 15th of Feb/May/Aug/Nov) up to
// the longest maturity are bootstrap vertices; a vertex with a single
// remaining cash flow takes its interpolated YTM as the spot rate, and
// the rest are solved against the already-computed earlier vertices.
func SpotRatesNTNB(settlement time.Time, maturities []time.Time, rates []float64, showCoupons bool) ([]SpotRate, error) {
	if len(maturities) == 0 {
		return nil, fmt.Errorf("SpotRatesNTNB: maturities are required")
	}
	for _, mat := range maturities {
		if err := CheckMaturity(NTNB, mat); err != nil {
			return nil, fmt.Errorf("SpotRatesNTNB: %w", err)
		}
	}

	ytmInterp, err := newRateInterpolator(settlement, maturities, rates)
	if err != nil {
		return nil, fmt.Errorf("SpotRatesNTNB: %w", err)
	}

	vertices := ntnbCouponGrid(settlement, maxDate(maturities))

	solved := make(map[time.Time]SpotRate, len(vertices))
	out := make([]SpotRate, 0, len(vertices))
	for _, mat := range vertices {
		bdays := calendar.Count(settlement, mat)
		byears := float64(bdays) / 252
		ytm := ytmInterp.Rate(bdays)

		couponDates, err := PaymentDates(NTNB, settlement, mat)
		if err != nil {
			return nil, fmt.Errorf("SpotRatesNTNB: %w", err)
		}

		var spot float64
		if len(couponDates) == 1 {
			spot = ytm
		} else {
			couponPV, err := presentValueAt(solved, couponDates[:len(couponDates)-1], ntnbCouponPmt)
			if err != nil {
				return nil, fmt.Errorf("SpotRatesNTNB: %w", err)
			}
			quotation, err := Quotation(NTNB, settlement, mat, ytm)
			if err != nil {
				return nil, fmt.Errorf("SpotRatesNTNB: %w", err)
			}
			priceFactor := ntnbFinalPmt / (quotation - couponPV)
			spot = math.Pow(priceFactor, 1/byears) - 1
		}

		node := SpotRate{MaturityDate: mat, BDays: bdays, Rate: spot}
		solved[mat] = node
		out = append(out, node)
	}

	if !showCoupons {
		out = filterMaturities(out, maturities)
	}
	return out, nil
}

// ntnbCouponGrid lists every possible NTN-B coupon date strictly after
// start up to and including end: the 15th of February, May, August and
// November of each year.
func ntnbCouponGrid(start, end time.Time) []time.Time {
	var grid []time.Time
	d := time.Date(start.Year(), time.February, 15, 0, 0, 0, 0, time.UTC)
	for ; !d.After(end); d = utils.AddMonths(d, 3) {
		if d.After(start) {
			grid = append(grid, d)
		}
	}
	return grid
}

// presentValueAt discounts a constant coupon paid on each date at the
// spot rate already solved for that date.
func presentValueAt(solved map[time.Time]SpotRate, dates []time.Time, coupon float64) (float64, error) {
	pv := 0.0
	for _, d := range dates {
		node, ok := solved[d]
		if !ok {
			return 0, fmt.Errorf("no spot rate solved for coupon date %s", d.Format("2006-01-02"))
		}
		pv += coupon / math.Pow(1+node.Rate, float64(node.BDays)/252)
	}
	return pv, nil
}

func filterMaturities(nodes []SpotRate, keep []time.Time) []SpotRate {
	wanted := make(map[time.Time]struct{}, len(keep))
	for _, d := range keep {
		wanted[d] = struct{}{}
	}
	out := nodes[:0]
	for _, n := range nodes {
		if _, ok := wanted[n.MaturityDate]; ok {
			out = append(out, n)
		}
	}
	return out
}

func maxDate(dates []time.Time) time.Time {
	max := dates[0]
	for _, d := range dates[1:] {
		if d.After(max) {
			max = d
		}
	}
	return max
}

func newRateInterpolator(settlement time.Time, maturities []time.Time, rates []float64) (*interp.Interpolator, error) {
	bdays := make([]int, len(maturities))
	for i, mat := range maturities {
		bdays[i] = calendar.Count(settlement, mat)
	}
	return interp.New(interp.FlatForward, bdays, rates)
}
