// Package interp interpolates interest rate curves over business-day
// vertices, using a 252-business-day year. Flat-forward is the standard
// no-arbitrage method for Brazilian zero curves; linear interpolation is
// provided for nominal comparisons.
package interp

import (
	"math"
	"sort"

	"github.com/pmfaria/brfi/utils"
)

// Method selects the interpolation formula.
type Method string

const (
	FlatForward Method = "flat_forward"
	Linear      Method = "linear"
)

// Option configures an Interpolator at construction time.
type Option func(*Interpolator)

// WithExtrapolation makes queries beyond the last known vertex return the
// last known rate instead of NaN.
func WithExtrapolation() Option {
	return func(ip *Interpolator) { ip.extrapolate = true }
}

// Interpolator holds an immutable, sorted table of (business days, rate)
// vertices. Construction deduplicates by business days (last value wins),
// drops NaN rates and negative day counts, and sorts ascending; instances
// are safe for concurrent use afterwards.
type Interpolator struct {
	method      Method
	bdays       []int
	rates       []float64
	extrapolate bool
}

// New builds an Interpolator from parallel business-day and rate slices.
func New(method Method, bdays []int, rates []float64, opts ...Option) (*Interpolator, error) {
	if len(bdays) != len(rates) {
		return nil, utils.ErrShapeMismatch
	}

	byDay := make(map[int]float64, len(bdays))
	for i, bd := range bdays {
		if bd < 0 || math.IsNaN(rates[i]) {
			continue
		}
		byDay[bd] = rates[i]
	}

	ip := &Interpolator{
		method: method,
		bdays:  make([]int, 0, len(byDay)),
		rates:  make([]float64, 0, len(byDay)),
	}
	for bd := range byDay {
		ip.bdays = append(ip.bdays, bd)
	}
	sort.Ints(ip.bdays)
	for _, bd := range ip.bdays {
		ip.rates = append(ip.rates, byDay[bd])
	}

	for _, opt := range opts {
		opt(ip)
	}
	return ip, nil
}

// Len returns the number of vertices kept after construction.
func (ip *Interpolator) Len() int { return len(ip.bdays) }

// Rate returns the interpolated rate at bday.
//
// A known vertex returns its rate exactly. Queries below the first vertex
// return the first rate regardless of the extrapolation flag. Queries
// above the last vertex return the last rate when extrapolation is
// enabled, NaN otherwise. Negative day counts and an empty table yield
// NaN.
func (ip *Interpolator) Rate(bday int) float64 {
	if bday < 0 || len(ip.bdays) == 0 {
		return math.NaN()
	}
	if bday <= ip.bdays[0] {
		return ip.rates[0]
	}
	last := len(ip.bdays) - 1
	if bday >= ip.bdays[last] {
		if bday == ip.bdays[last] || ip.extrapolate {
			return ip.rates[last]
		}
		return math.NaN()
	}

	// First vertex with bdays >= bday; equality was not handled above only
	// for interior vertices, so check it before interpolating.
	k := sort.SearchInts(ip.bdays, bday)
	if ip.bdays[k] == bday {
		return ip.rates[k]
	}
	j := k - 1

	switch ip.method {
	case Linear:
		slope := (ip.rates[k] - ip.rates[j]) / float64(ip.bdays[k]-ip.bdays[j])
		return ip.rates[j] + float64(bday-ip.bdays[j])*slope
	default:
		return flatForward(ip.rates[j], ip.bdays[j], ip.rates[k], ip.bdays[k], bday)
	}
}

// Rates is the element-wise form of Rate; results keep the input order.
func (ip *Interpolator) Rates(bdays []int) []float64 {
	out := make([]float64, len(bdays))
	for i, bd := range bdays {
		out[i] = ip.Rate(bd)
	}
	return out
}

// flatForward performs log-linear interpolation on compounded growth
// factors between two vertices, base 252 business days:
//
//	a = (1+r_j)^(du_j/252)
//	b = (1+r_k)^(du_k/252)
//	c = (du - du_j)/(du_k - du_j)
//	rate = (a * (b/a)^c)^(252/du) - 1
func flatForward(prevRate float64, prevBDays int, nextRate float64, nextBDays, bdays int) float64 {
	a := math.Pow(1+prevRate, float64(prevBDays)/252)
	b := math.Pow(1+nextRate, float64(nextBDays)/252)
	c := float64(bdays-prevBDays) / float64(nextBDays-prevBDays)
	return math.Pow(a*math.Pow(b/a, c), 252/float64(bdays)) - 1
}
