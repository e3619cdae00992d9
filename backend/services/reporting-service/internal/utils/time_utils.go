package utils

import (
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
)

var (
	businessLoc     *time.Location
	businessLocOnce sync.Once
)

// BusinessLocation is the zone month buckets and calendar dates are cut in.
func BusinessLocation() *time.Location {
	businessLocOnce.Do(func() {
		loc, err := time.LoadLocation(constants.BusinessTimezone)
		if err != nil {
			loc = time.UTC
		}
		businessLoc = loc
	})
	return businessLoc
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month t falls in, in the business zone.
func MonthOf(t time.Time) MonthKey {
	local := t.In(BusinessLocation())
	return MonthKey{Year: local.Year(), Month: local.Month()}
}

// Start is the first instant of the month in the business zone.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, BusinessLocation())
}

// AddMonths shifts the key by n months.
func (k MonthKey) AddMonths(n int) MonthKey {
	t := time.Date(k.Year, k.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before orders keys chronologically.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// TrailingMonths returns the n months ending with the month of now, oldest
// first.
func TrailingMonths(now time.Time, n int) []MonthKey {
	cur := MonthOf(now)
	out := make([]MonthKey, n)
	for i := 0; i < n; i++ {
		out[i] = cur.AddMonths(i - n + 1)
	}
	return out
}
