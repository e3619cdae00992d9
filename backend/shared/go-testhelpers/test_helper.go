package testhelpers

import (
	"context"
	"testing"
	"time"
)

// FixedNow is the clock every service under test reads.
var FixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// TestHelper bundles an in-memory store with fixture builders for service
// tests.
type TestHelper struct {
	T     *testing.T
	Ctx   context.Context
	Store *Store
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{
		T:     t,
		Ctx:   context.Background(),
		Store: NewStore(),
	}
}

// Now returns FixedNow. Pass it as a service clock.
func (h *TestHelper) Now() time.Time {
	return FixedNow
}

// DaysAgo is FixedNow shifted back by n days.
func DaysAgo(n int) time.Time {
	return FixedNow.AddDate(0, 0, -n)
}

// DaysAhead is FixedNow shifted forward by n days.
func DaysAhead(n int) time.Time {
	return FixedNow.AddDate(0, 0, n)
}
