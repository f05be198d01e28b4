package analysis

import (
	"fmt"
	"time"

	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/interp"
	"github.com/pmfaria/brfi/utils"
)

// DISpread is a bond's gross spread over the DI futures curve in basis
// points. NaN means the DI curve could not be interpolated at the bond's
// maturity.
type DISpread struct {
	MaturityDate time.Time
	BDays        int
	SpreadBps    float64
}

// GrossDISpreads returns, for each bond quote, the raw difference between
// its indicative rate and the DI rate interpolated to the same maturity,
// in basis points rounded to 2 decimals. Gross spreads ignore cash-flow
// structure; see bond.DINetSpread for the cash-flow-consistent measure.
func GrossDISpreads(settlement time.Time, maturities []time.Time, rates []float64,
	diExpirations []time.Time, diRates []float64) ([]DISpread, error) {

	if len(maturities) != len(rates) {
		return nil, fmt.Errorf("analysis: maturities and rates must have equal length")
	}
	diBDays := make([]int, len(diExpirations))
	for i, exp := range diExpirations {
		diBDays[i] = calendar.Count(settlement, exp)
	}
	di, err := interp.New(interp.FlatForward, diBDays, diRates)
	if err != nil {
		return nil, fmt.Errorf("analysis: DI curve: %w", err)
	}

	out := make([]DISpread, len(maturities))
	for i, mat := range maturities {
		bdays := calendar.Count(settlement, mat)
		spread := (rates[i] - di.Rate(bdays)) * 1e4
		out[i] = DISpread{
			MaturityDate: mat,
			BDays:        bdays,
			SpreadBps:    utils.RoundTo(spread, 2),
		}
	}
	return out, nil
}

// NetDISpreads runs the cash-flow-consistent DI spread solver for a batch
// of NTN-F quotes against one DI snapshot, seeding each search with the
// bond's gross spread.
func NetDISpreads(settlement time.Time, maturities []time.Time, rates []float64,
	diExpirations []time.Time, diRates []float64) ([]DISpread, error) {

	gross, err := GrossDISpreads(settlement, maturities, rates, diExpirations, diRates)
	if err != nil {
		return nil, err
	}

	out := make([]DISpread, len(maturities))
	for i, mat := range maturities {
		net, err := bond.DINetSpread(settlement, mat, rates[i], diExpirations, diRates,
			bond.WithInitialGuess(gross[i].SpreadBps/1e4))
		if err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
		out[i] = DISpread{
			MaturityDate: mat,
			BDays:        gross[i].BDays,
			SpreadBps:    net * 1e4,
		}
	}
	return out, nil
}
