package model

import (
	"sort"
	"time"
)

// Event is a time trial: an anchor timestamp and an ordered set of waves.
type Event struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Start           time.Time `json:"start"`
	SeededStartlist bool      `json:"seeded_startlist"`
	OptionID        int       `json:"option_id,omitempty"` // 0 = not an optional event
	Waves           []Wave    `json:"waves"`
}

// OrderedWaves returns the waves sorted by (Sequence, ID).
// The receiver is not modified.
func (e Event) OrderedWaves() []Wave {
	waves := make([]Wave, len(e.Waves))
	copy(waves, e.Waves)
	sort.SliceStable(waves, func(i, j int) bool {
		if waves[i].Sequence != waves[j].Sequence {
			return waves[i].Sequence < waves[j].Sequence
		}
		return waves[i].ID < waves[j].ID
	})
	return waves
}

// Wave returns the wave with the given id.
func (e Event) Wave(id int64) (Wave, bool) {
	for _, w := range e.Waves {
		if w.ID == id {
			return w, true
		}
	}
	return Wave{}, false
}

// ClockTime converts an offset from the event anchor into wall time.
// Returns nil when offset is nil.
func (e Event) ClockTime(offset *time.Duration) *time.Time {
	if offset == nil {
		return nil
	}
	t := e.Start.Add(*offset)
	return &t
}
