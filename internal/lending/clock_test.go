package lending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(due, due.Add(-time.Hour)))
	assert.Equal(t, 0, DaysOverdue(due, due.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysOverdue(due, due.Add(25*time.Hour)))
	assert.Equal(t, 40, DaysOverdue(due, due.AddDate(0, 0, 40)))
}

func TestPastDue(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, PastDue(due, due))
	assert.True(t, PastDue(due, due.Add(time.Nanosecond)))
	assert.True(t, PastDue(due, due.Add(20*time.Hour)))
	assert.False(t, PastDue(due, due.AddDate(0, 0, -1)))
}

func TestDaysOverdue_FloorsElapsedHours(t *testing.T) {
	due := time.Date(2025, 6, 29, 23, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 6, 22, 0, 0, 0, time.UTC)

	// 6 days 23 hours elapsed
	assert.True(t, PastDue(due, now))
	assert.Equal(t, 6, DaysOverdue(due, now))
	assert.Equal(t, 7, DaysOverdue(due, now.Add(time.Hour)))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, FixedClock{At: at}.Now())
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}
