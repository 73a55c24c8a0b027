package testutil

import (
	"sync"
	"time"
)

// TestDate is a settable reference date for tests.
//
// It satisfies the engine's DateSource interface, so age-based ordering can
// be pinned to a known day and moved forward to test how ages change.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type TestDate struct {
	mu  sync.Mutex
	day time.Time
}

// NewTestDate creates a date source fixed at the calendar day of t (UTC).
func NewTestDate(t time.Time) *TestDate {
	return &TestDate{day: truncateDay(t)}
}

// MustParseDate creates a date source from a YYYY-MM-DD string.
// Panics on malformed input.
func MustParseDate(s string) *TestDate {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return NewTestDate(t)
}

// Today returns the current reference date at midnight UTC.
func (d *TestDate) Today() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.day
}

// Set moves the reference date to the calendar day of t.
func (d *TestDate) Set(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.day = truncateDay(t)
}

// AdvanceDays moves the reference date by n days (negative moves back).
func (d *TestDate) AdvanceDays(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.day = d.day.AddDate(0, 0, n)
}

func truncateDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
