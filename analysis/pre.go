// Package analysis builds cross-instrument curves and relative-value
// measures on top of the bond pricing primitives: the nominal (PRE) spot
// curve, breakeven inflation rates and DI spreads.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/marketdata"
)

// PreCurve assembles the nominal fixed-rate (PRE) spot curve for one
// settlement date. LTN yields are zero-coupon and enter the curve
// directly; NTN-F yields are bootstrapped into spot rates first. When a
// maturity is quoted in both segments the bootstrapped NTN-F vertex wins,
// as it is consistent with the rest of the coupon curve.
//
// NTN-F quotes without any LTN quotes are an error: the bootstrap needs
// the short zero-coupon segment to anchor on.
func PreCurve(settlement time.Time, ltnMaturities []time.Time, ltnRates []float64,
	ntnfMaturities []time.Time, ntnfRates []float64) ([]bond.SpotRate, error) {

	if len(ntnfMaturities) > 0 && len(ltnMaturities) == 0 {
		return nil, fmt.Errorf("analysis: NTN-F quotes without LTN quotes cannot anchor a PRE curve")
	}
	if len(ltnMaturities) != len(ltnRates) || len(ntnfMaturities) != len(ntnfRates) {
		return nil, fmt.Errorf("analysis: maturities and rates must have equal length")
	}

	byMaturity := make(map[time.Time]bond.SpotRate)
	for i, mat := range ltnMaturities {
		byMaturity[mat] = bond.SpotRate{
			MaturityDate: mat,
			BDays:        bdaysTo(settlement, mat),
			Rate:         ltnRates[i],
		}
	}

	if len(ntnfMaturities) > 0 {
		spots, err := bond.SpotRatesNTNF(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates, false)
		if err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
		for _, s := range spots {
			byMaturity[s.MaturityDate] = s
		}
	}

	curve := make([]bond.SpotRate, 0, len(byMaturity))
	for _, s := range byMaturity {
		curve = append(curve, s)
	}
	sort.Slice(curve, func(i, j int) bool { return curve[i].BDays < curve[j].BDays })
	return curve, nil
}

func bdaysTo(settlement, maturity time.Time) int {
	return calendar.Count(settlement, maturity)
}

// PreCurveFor builds the PRE curve from a quote provider, treating the
// settlement date as the quotes' reference date. Missing NTN-F quotes are
// tolerated (short curves trade LTN only); missing LTN quotes are not.
func PreCurveFor(settlement time.Time, provider marketdata.RateProvider) ([]bond.SpotRate, error) {
	ltn, err := provider.BondQuotes(settlement, "LTN")
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	ltnMats, ltnRates := quoteSeries(ltn)

	var ntnfMats []time.Time
	var ntnfRates []float64
	if ntnf, err := provider.BondQuotes(settlement, "NTN-F"); err == nil {
		ntnfMats, ntnfRates = quoteSeries(ntnf)
	}
	return PreCurve(settlement, ltnMats, ltnRates, ntnfMats, ntnfRates)
}

func quoteSeries(quotes []marketdata.BondQuote) ([]time.Time, []float64) {
	mats := make([]time.Time, len(quotes))
	rates := make([]float64, len(quotes))
	for i, q := range quotes {
		mats[i] = q.MaturityDate
		rates[i] = q.IndicativeRate
	}
	return mats, rates
}
