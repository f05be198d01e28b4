package utils

import (
	"sort"
	"time"
)

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// ParseDate converts DD-MM-YYYY (the day-first convention used by the
// Brazilian market data sources) to time.Time.
func ParseDate(strDate string) (time.Time, error) {
	return time.Parse("02-01-2006", strDate)
}

// ParseISODate converts YYYY-MM-DD to time.Time.
func ParseISODate(strDate string) (time.Time, error) {
	return time.Parse("2006-01-02", strDate)
}

// AddMonths behaves like Excel's EDATE, avoiding Go's month normalization
// surprises: stepping from Jan 31 by one month lands on the last day of
// February, not March 2nd.
func AddMonths(t time.Time, months int) time.Time {
	d := t.AddDate(0, months, 0)
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if d.Month() == target.Month() {
		return d
	}
	origMonth := d.Month()
	for d.Month() == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
