package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/marketdata"
)

// PreCurveInput is one settlement-date snapshot for the batch builder.
type PreCurveInput struct {
	Settlement     time.Time
	LTNMaturities  []time.Time
	LTNRates       []float64
	NTNFMaturities []time.Time
	NTNFRates      []float64
}

// PreCurveBatch builds a PRE curve per snapshot concurrently, bounded by
// maxParallel workers (0 means unbounded). Results keep the input order;
// the first snapshot error cancels the remaining work.
func PreCurveBatch(ctx context.Context, inputs []PreCurveInput, maxParallel int) ([][]bond.SpotRate, error) {
	g, _ := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}

	out := make([][]bond.SpotRate, len(inputs))
	for i, in := range inputs {
		g.Go(func() error {
			curve, err := PreCurve(in.Settlement, in.LTNMaturities, in.LTNRates, in.NTNFMaturities, in.NTNFRates)
			if err != nil {
				return err
			}
			out[i] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PreCurveBatchFor builds one PRE curve per settlement date from a quote
// provider, concurrently. Results keep the order of dates.
func PreCurveBatchFor(ctx context.Context, dates []time.Time, provider marketdata.RateProvider, maxParallel int) ([][]bond.SpotRate, error) {
	g, _ := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}

	out := make([][]bond.SpotRate, len(dates))
	for i, d := range dates {
		g.Go(func() error {
			curve, err := PreCurveFor(d, provider)
			if err != nil {
				return err
			}
			out[i] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
