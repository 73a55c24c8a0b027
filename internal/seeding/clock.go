package seeding

import "time"

// DateSource supplies "today" for age-based ordering metrics.
//
// The allocator never reads ambient time: re-running a regeneration with the
// same DateSource and unchanged participants reproduces the same schedule.
type DateSource interface {
	Today() time.Time
}

// SystemDate reads the current date from the system clock in Location
// (UTC when nil).
type SystemDate struct {
	Location *time.Location
}

// Today returns the current date at midnight.
func (s SystemDate) Today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOnly(time.Now().In(loc))
}

// FixedDate always returns the same date.
type FixedDate time.Time

// Today returns the fixed date at midnight.
func (f FixedDate) Today() time.Time {
	return DateOnly(time.Time(f))
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
