// Package curve derives forward rates from zero (spot) rate curves under
// the 252-business-day year convention.
package curve

import (
	"math"
	"sort"
)

// ForwardPoint is one zero-curve vertex in a Forwards batch. Group allows
// independent curves (for example different reference dates or bond
// types) to share one call; an empty Group puts all points in the same
// curve. A negative BDays or NaN Rate marks the element as missing.
type ForwardPoint struct {
	BDays int
	Rate  float64
	Group string
}

// Forward returns the forward rate between two zero-curve vertices:
//
//	f = ((1+r2)^(du2/252) / (1+r1)^(du1/252))^(252/(du2-du1)) - 1
//
// NaN is returned when either rate is NaN, either day count is negative,
// or bday2 <= bday1.
func Forward(bday1, bday2 int, rate1, rate2 float64) float64 {
	if bday1 < 0 || bday2 < 0 || math.IsNaN(rate1) || math.IsNaN(rate2) {
		return math.NaN()
	}
	if bday2 <= bday1 {
		return math.NaN()
	}
	t1 := float64(bday1) / 252
	t2 := float64(bday2) / 252
	return math.Pow(math.Pow(1+rate2, t2)/math.Pow(1+rate1, t1), 1/(t2-t1)) - 1
}

type forwardKey struct {
	group string
	bdays int
}

// Forwards computes the forward rate at every vertex of one or more zero
// curves. Within each group, points are deduplicated by business days
// (last value wins) and sorted ascending before computing; the first
// vertex of a group has no prior point, so its forward rate is its own
// spot rate. Results are returned in the original input order, with NaN
// for missing inputs.
func Forwards(points []ForwardPoint) []float64 {
	// Dedupe keep-last per (group, bdays).
	latest := make(map[forwardKey]float64, len(points))
	for _, p := range points {
		if p.BDays < 0 || math.IsNaN(p.Rate) {
			continue
		}
		latest[forwardKey{p.Group, p.BDays}] = p.Rate
	}

	keys := make([]forwardKey, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].group != keys[j].group {
			return keys[i].group < keys[j].group
		}
		return keys[i].bdays < keys[j].bdays
	})

	fwd := make(map[forwardKey]float64, len(keys))
	for i, k := range keys {
		if i == 0 || keys[i-1].group != k.group {
			fwd[k] = latest[k]
			continue
		}
		prev := keys[i-1]
		fwd[k] = Forward(prev.bdays, k.bdays, latest[prev], latest[k])
	}

	out := make([]float64, len(points))
	for i, p := range points {
		if v, ok := fwd[forwardKey{p.Group, p.BDays}]; ok && p.BDays >= 0 && !math.IsNaN(p.Rate) {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
