package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/interp"
	"github.com/pmfaria/brfi/utils"
)

const (
	spreadTolerance = 1e-8
	spreadMaxIter   = 100

	// Default bisection half-widths: 100bp around zero, 50bp around a
	// supplied initial guess. The width is tunable via WithWindow.
	defaultSpreadWindow = 0.01
	guessSpreadWindow   = 0.005
)

type spreadConfig struct {
	guess    float64
	hasGuess bool
	window   float64
}

// SpreadOption tunes the bisection search used by the spread solvers.
type SpreadOption func(*spreadConfig)

// WithInitialGuess centers the bisection interval on g and narrows the
// default half-width to 50bp.
func WithInitialGuess(g float64) SpreadOption {
	return func(c *spreadConfig) {
		c.guess = g
		c.hasGuess = true
		if c.window == 0 {
			c.window = guessSpreadWindow
		}
	}
}

// WithWindow sets the bisection interval half-width in decimal rate terms
// (0.01 = 100bp).
func WithWindow(w float64) SpreadOption {
	return func(c *spreadConfig) { c.window = w }
}

// bisect finds a root of f in [a, b]. It requires a sign change across the
// interval and is capped at spreadMaxIter iterations.
func bisect(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return 0, fmt.Errorf("bisect: function does not change sign in [%g, %g]", a, b)
	}
	for i := 0; i < spreadMaxIter; i++ {
		mid := (a + b) / 2
		fmid := f(mid)
		if math.Abs(fmid) < spreadTolerance || (b-a)/2 < spreadTolerance {
			return mid, nil
		}
		if fmid*fa < 0 {
			b, fb = mid, fmid
		} else {
			a, fa = mid, fmid
		}
	}
	return (a + b) / 2, nil
}

// solveSpread runs the bisection over the configured interval. No sign
// change is a soft failure: the result is NaN, not an error, so batch
// callers keep going.
func solveSpread(f func(float64) float64, opts []SpreadOption) float64 {
	cfg := spreadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.window == 0 {
		cfg.window = defaultSpreadWindow
	}
	a := cfg.guess - cfg.window
	b := cfg.guess + cfg.window

	p, err := bisect(f, a, b)
	if err != nil {
		return math.NaN()
	}
	return p
}

// DINetSpread returns the constant spread over the interpolated DI curve
// that discounts an NTN-F's cash flows back to its ANBIMA price, in
// decimal terms (0.0012 = 12bp). A good initial guess is the bond's gross
// DI spread. NaN is returned when no solution exists in the search
// interval or the DI inputs are empty.
func DINetSpread(settlement, maturity time.Time, rate float64, diExpirations []time.Time, diRates []float64, opts ...SpreadOption) (float64, error) {
	diBDays := make([]int, len(diExpirations))
	for i, exp := range diExpirations {
		diBDays[i] = calendar.Count(settlement, exp)
	}
	ip, err := interp.New(interp.FlatForward, diBDays, diRates)
	if err != nil {
		return 0, fmt.Errorf("DINetSpread: %w", err)
	}
	if ip.Len() == 0 {
		return math.NaN(), nil
	}

	flows, err := CashFlows(NTNF, settlement, maturity)
	if err != nil {
		return 0, fmt.Errorf("DINetSpread: %w", err)
	}
	price, err := Price(NTNF, settlement, maturity, rate)
	if err != nil {
		return 0, fmt.Errorf("DINetSpread: %w", err)
	}

	byears := make([]float64, len(flows))
	diInterp := make([]float64, len(flows))
	for i, cf := range flows {
		bdays := calendar.Count(settlement, cf.PaymentDate)
		byears[i] = float64(bdays) / 252
		diInterp[i] = ip.Rate(bdays)
	}

	priceDifference := func(p float64) float64 {
		pv := 0.0
		for i, cf := range flows {
			pv += cf.Amount / math.Pow(1+diInterp[i]+p, byears[i])
		}
		return pv - price
	}
	return solveSpread(priceDifference, opts), nil
}

// PremiumNTNF returns the premium of an NTN-F yield over the DI curve as
// a ratio of daily factors: the bond's cash flows are valued on the DI
// curve, the DI-equivalent YTM backed out by bisection, and the two
// yields compared. Payment dates are rolled to business days first, as
// DI expirations always fall on business days.
func PremiumNTNF(settlement, maturity time.Time, rate float64, diExpirations []time.Time, diRates []float64) (float64, error) {
	diBDays := make([]int, len(diExpirations))
	for i, exp := range diExpirations {
		diBDays[i] = calendar.Count(settlement, exp)
	}
	ip, err := interp.New(interp.FlatForward, diBDays, diRates)
	if err != nil {
		return 0, fmt.Errorf("PremiumNTNF: %w", err)
	}

	flows, err := CashFlows(NTNF, settlement, maturity)
	if err != nil {
		return 0, fmt.Errorf("PremiumNTNF: %w", err)
	}

	amounts := make([]float64, len(flows))
	diCurve := make([]float64, len(flows))
	byears := make([]float64, len(flows))
	for i, cf := range flows {
		payDate := calendar.Offset(cf.PaymentDate, 0, calendar.RollForward)
		bdays := calendar.Count(settlement, payDate)
		amounts[i] = cf.Amount
		byears[i] = float64(bdays) / 252
		diCurve[i] = ip.Rate(bdays)
	}
	diPrice, err := utils.PresentValue(amounts, diCurve, byears)
	if err != nil {
		return 0, fmt.Errorf("PremiumNTNF: %w", err)
	}

	priceDifference := func(ytm float64) float64 {
		pv := 0.0
		for i, cf := range flows {
			pv += cf.Amount / math.Pow(1+ytm, byears[i])
		}
		return pv - diPrice
	}
	diYTM := solveSpread(priceDifference, []SpreadOption{WithInitialGuess(rate)})
	if math.IsNaN(diYTM) {
		return math.NaN(), nil
	}

	bondFactor := math.Pow(1+rate, 1.0/252)
	diFactor := math.Pow(1+diYTM, 1.0/252)
	return (bondFactor - 1) / (diFactor - 1), nil
}
