package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
)

// National public holidays with a fixed date. Religious holidays move with
// the lunar calendar and are not modelled.
var (
	holidayNewYear     = &cal.Holiday{Name: "New Year's Day", Type: cal.ObservancePublic, Month: time.January, Day: 1, Func: cal.CalcDayOfMonth}
	holidaySovereignty = &cal.Holiday{Name: "National Sovereignty and Children's Day", Type: cal.ObservancePublic, Month: time.April, Day: 23, Func: cal.CalcDayOfMonth}
	holidayLabour      = &cal.Holiday{Name: "Labour and Solidarity Day", Type: cal.ObservancePublic, Month: time.May, Day: 1, Func: cal.CalcDayOfMonth}
	holidayYouth       = &cal.Holiday{Name: "Commemoration of Atatürk, Youth and Sports Day", Type: cal.ObservancePublic, Month: time.May, Day: 19, Func: cal.CalcDayOfMonth}
	holidayDemocracy   = &cal.Holiday{Name: "Democracy and National Unity Day", Type: cal.ObservancePublic, Month: time.July, Day: 15, Func: cal.CalcDayOfMonth, StartYear: 2017}
	holidayVictory     = &cal.Holiday{Name: "Victory Day", Type: cal.ObservancePublic, Month: time.August, Day: 30, Func: cal.CalcDayOfMonth}
	holidayRepublic    = &cal.Holiday{Name: "Republic Day", Type: cal.ObservancePublic, Month: time.October, Day: 29, Func: cal.CalcDayOfMonth}
)

var businessCalendar = cal.NewBusinessCalendar()

func init() {
	businessCalendar.AddHoliday(
		holidayNewYear,
		holidaySovereignty,
		holidayLabour,
		holidayYouth,
		holidayDemocracy,
		holidayVictory,
		holidayRepublic,
	)
}

// IsBusinessDay is false on weekends and fixed public holidays.
func IsBusinessDay(t time.Time) bool {
	return businessCalendar.IsWorkday(t)
}

// BusinessDaysLate counts business days after due up to and including paid,
// comparing calendar dates in loc. Zero when paid is not after due.
func BusinessDaysLate(due, paid time.Time, loc *time.Location) int {
	d := dateOf(due.In(loc))
	p := dateOf(paid.In(loc))
	n := 0
	for day := d.AddDate(0, 0, 1); !day.After(p); day = day.AddDate(0, 0, 1) {
		if IsBusinessDay(day) {
			n++
		}
	}
	return n
}

// WholeDaysBetween is the number of complete 24h periods from a to b,
// truncated toward zero.
func WholeDaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
