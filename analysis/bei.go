package analysis

import (
	"fmt"
	"time"

	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/interp"
)

// BEIRate is the breakeven inflation implied by one NTN-B vertex: the
// inflation rate that equates the real and nominal yields.
type BEIRate struct {
	MaturityDate time.Time
	BDays        int
	RealRate     float64
	NominalRate  float64
	// Breakeven is (1+nominal)/(1+real) - 1.
	Breakeven float64
}

// BEIRates bootstraps the NTN-B real spot curve and pairs each vertex with
// the nominal spot rate interpolated from the supplied nominal curve. The
// nominal interpolation extrapolates flat beyond its last vertex, since
// NTN-B maturities routinely run past the liquid nominal segment.
func BEIRates(settlement time.Time, ntnbMaturities []time.Time, ntnbRates []float64,
	nominalBDays []int, nominalRates []float64) ([]BEIRate, error) {

	spots, err := bond.SpotRatesNTNB(settlement, ntnbMaturities, ntnbRates, false)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	nominal, err := interp.New(interp.FlatForward, nominalBDays, nominalRates, interp.WithExtrapolation())
	if err != nil {
		return nil, fmt.Errorf("analysis: nominal curve: %w", err)
	}

	out := make([]BEIRate, len(spots))
	for i, s := range spots {
		nir := nominal.Rate(s.BDays)
		out[i] = BEIRate{
			MaturityDate: s.MaturityDate,
			BDays:        s.BDays,
			RealRate:     s.Rate,
			NominalRate:  nir,
			Breakeven:    (1+nir)/(1+s.Rate) - 1,
		}
	}
	return out, nil
}
