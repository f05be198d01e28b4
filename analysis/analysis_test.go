package analysis_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmfaria/brfi/analysis"
	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/marketdata"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	settlement = date(2024, time.August, 23)

	ltnMaturities = []time.Time{
		date(2025, time.January, 1),
		date(2026, time.January, 1),
		date(2027, time.January, 1),
	}
	ltnRates = []float64{0.105, 0.110, 0.112}

	ntnfMaturities = []time.Time{
		date(2029, time.January, 1),
		date(2031, time.January, 1),
	}
	ntnfRates = []float64{0.115, 0.117}

	diExpirations = []time.Time{
		date(2025, time.January, 1),
		date(2030, time.January, 1),
		date(2035, time.January, 1),
	}
	diRates = []float64{0.10823, 0.11594, 0.11531}
)

func TestPreCurve(t *testing.T) {
	curve, err := analysis.PreCurve(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates)
	require.NoError(t, err)

	// LTN vertices pass through, NTN-F vertices are bootstrapped; one row
	// per quoted maturity, ascending by term.
	require.Len(t, curve, len(ltnMaturities)+len(ntnfMaturities))
	for i := 1; i < len(curve); i++ {
		assert.Greater(t, curve[i].BDays, curve[i-1].BDays)
	}
	assert.Equal(t, date(2025, time.January, 1), curve[0].MaturityDate)
	assert.Equal(t, 0.105, curve[0].Rate)
	assert.Equal(t, date(2031, time.January, 1), curve[len(curve)-1].MaturityDate)
}

func TestPreCurveLTNOnly(t *testing.T) {
	curve, err := analysis.PreCurve(settlement, ltnMaturities, ltnRates, nil, nil)
	require.NoError(t, err)
	require.Len(t, curve, len(ltnMaturities))
	assert.Equal(t, 0.112, curve[2].Rate)
}

func TestPreCurveRequiresLTNAnchor(t *testing.T) {
	_, err := analysis.PreCurve(settlement, nil, nil, ntnfMaturities, ntnfRates)
	assert.Error(t, err)
}

func TestBEIRates(t *testing.T) {
	ntnbMaturities := []time.Time{
		date(2026, time.August, 15),
		date(2035, time.May, 15),
	}
	ntnbRates := []float64{0.0615, 0.0620}

	nominalBDays := make([]int, len(ltnMaturities))
	for i, m := range ltnMaturities {
		nominalBDays[i] = calendar.Count(settlement, m)
	}

	bei, err := analysis.BEIRates(settlement, ntnbMaturities, ntnbRates, nominalBDays, ltnRates)
	require.NoError(t, err)
	require.Len(t, bei, 2)

	for _, b := range bei {
		want := (1+b.NominalRate)/(1+b.RealRate) - 1
		assert.InDelta(t, want, b.Breakeven, 1e-15)
		assert.Greater(t, b.Breakeven, 0.0)
	}

	// 15-05-2035 is past the last nominal vertex: the nominal leg comes
	// from flat extrapolation, not NaN.
	assert.Equal(t, 0.112, bei[1].NominalRate)
	assert.False(t, math.IsNaN(bei[1].Breakeven))
}

func TestGrossDISpreads(t *testing.T) {
	spreads, err := analysis.GrossDISpreads(settlement,
		[]time.Time{date(2035, time.January, 1)}, []float64{0.116586},
		diExpirations, diRates)
	require.NoError(t, err)
	require.Len(t, spreads, 1)

	// 01-01-2035 matches the last DI vertex: gross spread is the plain
	// difference, in bps rounded to 2 decimals.
	assert.InDelta(t, (0.116586-0.11531)*1e4, spreads[0].SpreadBps, 0.005)
}

func TestNetDISpreads(t *testing.T) {
	spreads, err := analysis.NetDISpreads(settlement,
		[]time.Time{date(2035, time.January, 1)}, []float64{0.116586},
		diExpirations, diRates)
	require.NoError(t, err)
	require.Len(t, spreads, 1)
	assert.InDelta(t, 12.13, spreads[0].SpreadBps, 0.02)
}

func TestPreCurveBatch(t *testing.T) {
	inputs := []analysis.PreCurveInput{
		{Settlement: settlement, LTNMaturities: ltnMaturities, LTNRates: ltnRates,
			NTNFMaturities: ntnfMaturities, NTNFRates: ntnfRates},
		{Settlement: settlement, LTNMaturities: ltnMaturities, LTNRates: ltnRates},
	}

	curves, err := analysis.PreCurveBatch(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.Len(t, curves, 2)

	// Results keep the input order and match the sequential builder.
	want0, err := analysis.PreCurve(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates)
	require.NoError(t, err)
	assert.Equal(t, want0, curves[0])
	assert.Len(t, curves[1], len(ltnMaturities))
}

func TestPreCurveBatchPropagatesError(t *testing.T) {
	inputs := []analysis.PreCurveInput{
		{Settlement: settlement, NTNFMaturities: ntnfMaturities, NTNFRates: ntnfRates},
	}
	_, err := analysis.PreCurveBatch(context.Background(), inputs, 0)
	assert.Error(t, err)
}

func TestPreCurveFor(t *testing.T) {
	var bonds []marketdata.BondQuote
	for i, m := range ltnMaturities {
		bonds = append(bonds, marketdata.BondQuote{
			ReferenceDate: settlement, BondType: "LTN", MaturityDate: m, IndicativeRate: ltnRates[i],
		})
	}
	for i, m := range ntnfMaturities {
		bonds = append(bonds, marketdata.BondQuote{
			ReferenceDate: settlement, BondType: "NTN-F", MaturityDate: m, IndicativeRate: ntnfRates[i],
		})
	}
	provider, err := marketdata.NewStaticProvider(bonds, nil)
	require.NoError(t, err)

	got, err := analysis.PreCurveFor(settlement, provider)
	require.NoError(t, err)

	want, err := analysis.PreCurve(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	batch, err := analysis.PreCurveBatchFor(context.Background(), []time.Time{settlement}, provider, 1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, want, batch[0])
}

func TestPreCurveMatchesBootstrap(t *testing.T) {
	curve, err := analysis.PreCurve(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates)
	require.NoError(t, err)

	spots, err := bond.SpotRatesNTNF(settlement, ltnMaturities, ltnRates, ntnfMaturities, ntnfRates, false)
	require.NoError(t, err)

	byDate := make(map[time.Time]float64)
	for _, s := range curve {
		byDate[s.MaturityDate] = s.Rate
	}
	for _, s := range spots {
		assert.Equal(t, s.Rate, byDate[s.MaturityDate])
	}
}
