package lending

import "time"

// Clock is the single source of "now" for a run
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// DaysOverdue returns the whole days elapsed since due, floored, never negative
func DaysOverdue(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}

// PastDue reports whether the due instant lies strictly before now
func PastDue(due, now time.Time) bool {
	return due.Before(now)
}
