// Package calendar implements business-day arithmetic for the Brazilian
// bond market (dias úteis), following the national holiday lists published
// by ANBIMA. Two holiday regimes exist: the list in force until the end of
// 2023 and the list valid from 2023-12-26 onward, which adds the
// Consciência Negra national holiday starting in 2024. Every operation
// resolves its regime deterministically from its input dates.
package calendar

import "time"

// Regime identifies which holiday list applies to a computation.
type Regime int

const (
	RegimeOld Regime = iota
	RegimeNew
)

// TransitionDate is the first date (inclusive) on which the new holiday
// list is in force.
var TransitionDate = time.Date(2023, time.December, 26, 0, 0, 0, 0, time.UTC)

// Roll is the direction used to move a non-business day to a business day.
type Roll string

const (
	RollForward  Roll = "forward"
	RollBackward Roll = "backward"
)

var oldHolidays = map[string]struct{}{}
var newHolidays = map[string]struct{}{}

func init() {
	for year := firstHolidayYear; year <= lastHolidayYear; year++ {
		for _, h := range nationalHolidays(year, false) {
			oldHolidays[h.Format("2006-01-02")] = struct{}{}
		}
		for _, h := range nationalHolidays(year, true) {
			newHolidays[h.Format("2006-01-02")] = struct{}{}
		}
	}
}

// RegimeFor returns the holiday regime in force on t.
func RegimeFor(t time.Time) Regime {
	if t.Before(TransitionDate) {
		return RegimeOld
	}
	return RegimeNew
}

func isHoliday(r Regime, t time.Time) bool {
	key := t.Format("2006-01-02")
	switch r {
	case RegimeOld:
		_, ok := oldHolidays[key]
		return ok
	default:
		_, ok := newHolidays[key]
		return ok
	}
}

func isBusinessDayIn(r Regime, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(r, t)
}

// IsBusinessDay reports whether t is a weekday that is not a holiday
// under the regime in force on t.
func IsBusinessDay(t time.Time) bool {
	return isBusinessDayIn(RegimeFor(t), t)
}

// Count returns the number of business days from start (inclusive) to end
// (exclusive). The count is negative when end is before start. The holiday
// regime is selected from the start date of the interval.
func Count(start, end time.Time) int {
	r := RegimeFor(start)
	if end.Before(start) {
		return -countForward(r, end, start)
	}
	return countForward(r, start, end)
}

func countForward(r Regime, start, end time.Time) int {
	n := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if isBusinessDayIn(r, d) {
			n++
		}
	}
	return n
}

// MissingCount is the sentinel emitted by CountMany for an element whose
// input dates are invalid (zero). It sits far outside any real
// business-day count so it cannot be mistaken for a valid result.
const MissingCount = -(1 << 30)

// CountMany is the element-wise form of Count. Elements with a zero start
// or end date yield MissingCount instead of aborting the batch. Results
// keep the input order.
func CountMany(starts, ends []time.Time) []int {
	out := make([]int, len(starts))
	for i := range starts {
		if i >= len(ends) || starts[i].IsZero() || ends[i].IsZero() {
			out[i] = MissingCount
			continue
		}
		out[i] = Count(starts[i], ends[i])
	}
	return out
}

// Offset moves date to a business day and then advances it n business
// days. If date is not itself a business day it is first rolled in the
// given direction; an offset of 0 returns the rolled anchor. Negative n
// moves backward. The regime is selected from the input date.
func Offset(date time.Time, n int, roll Roll) time.Time {
	r := RegimeFor(date)
	t := rollToBusinessDay(r, date, roll)
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if isBusinessDayIn(r, t) {
			n -= step
		}
	}
	return t
}

func rollToBusinessDay(r Regime, t time.Time, roll Roll) time.Time {
	step := 1
	if roll == RollBackward {
		step = -1
	}
	for !isBusinessDayIn(r, t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

// Generate returns every business day in [start, end], both inclusive,
// under the regime of the start date.
func Generate(start, end time.Time) []time.Time {
	r := RegimeFor(start)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isBusinessDayIn(r, d) {
			days = append(days, d)
		}
	}
	return days
}
