package calendar

import "time"

// Year range covered by the holiday tables. Matches the span of the
// published ANBIMA lists.
const (
	firstHolidayYear = 2001
	lastHolidayYear  = 2099
)

// easterSunday returns Gregorian Easter for the given year using the
// anonymous (Meeus/Jones/Butcher) computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// nationalHolidays returns the Brazilian national holidays for one year.
// The movable feasts (Carnival Monday and Tuesday, Good Friday, Corpus
// Christi) are derived from Easter. Consciência Negra (Nov 20) became a
// national holiday in 2024 and belongs only to the new regime list.
func nationalHolidays(year int, newRegime bool) []time.Time {
	date := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}
	easter := easterSunday(year)

	holidays := []time.Time{
		date(time.January, 1),    // Confraternização Universal
		easter.AddDate(0, 0, -48), // Carnival Monday
		easter.AddDate(0, 0, -47), // Carnival Tuesday
		easter.AddDate(0, 0, -2),  // Good Friday
		date(time.April, 21),     // Tiradentes
		date(time.May, 1),        // Dia do Trabalho
		easter.AddDate(0, 0, 60),  // Corpus Christi
		date(time.September, 7),  // Independência
		date(time.October, 12),   // Nossa Senhora Aparecida
		date(time.November, 2),   // Finados
		date(time.November, 15),  // Proclamação da República
		date(time.December, 25),  // Natal
	}
	if newRegime && year >= 2024 {
		holidays = append(holidays, date(time.November, 20)) // Consciência Negra
	}
	return holidays
}
