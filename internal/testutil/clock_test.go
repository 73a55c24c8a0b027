package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTestDate_TruncatesToDay(t *testing.T) {
	d := NewTestDate(time.Date(2026, 6, 14, 17, 45, 3, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), d.Today())
}

func TestTestDate_KeepsCalendarDayOfOtherZones(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	d := NewTestDate(time.Date(2026, 6, 15, 2, 0, 0, 0, zone))
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), d.Today())
}

func TestMustParseDate(t *testing.T) {
	d := MustParseDate("2026-02-28")
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), d.Today())

	assert.Panics(t, func() { MustParseDate("28/02/2026") })
}

func TestTestDate_SetAndAdvance(t *testing.T) {
	d := MustParseDate("2026-02-28")

	d.AdvanceDays(1)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d.Today())

	d.AdvanceDays(-366)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), d.Today())

	d.Set(time.Date(2030, 1, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), d.Today())
}

func TestTestDate_ThreadSafe(t *testing.T) {
	d := MustParseDate("2026-01-01")
	const numGoroutines = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			d.AdvanceDays(1)
			_ = d.Today()
		}()
	}
	wg.Wait()

	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), d.Today())
}
