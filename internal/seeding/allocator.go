package seeding

import (
	"strconv"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// MinimumGap is the absolute floor between two consecutive starters.
const MinimumGap = 10 * time.Second

// Accumulator threads the running clock and sequence counter through the
// waves of one event. Sequence numbers and time are global to the event.
type Accumulator struct {
	// Clock is the offset from the event anchor of the last assigned start.
	Clock time.Duration

	// Next is the start sequence the next participant receives.
	Next int
}

// NewAccumulator returns the accumulator for the first wave of an event.
func NewAccumulator() Accumulator {
	return Accumulator{Next: 1}
}

// Assignment is one allocated start slot.
type Assignment struct {
	ParticipantID int64         `json:"participant_id"`
	WaveID        int64         `json:"wave_id"`
	StartSequence int           `json:"start_sequence"`
	StartTime     time.Duration `json:"start_time"`
}

// WaveParticipants pairs a wave with its resolved, unordered participants.
type WaveParticipants struct {
	Wave         model.Wave
	Participants []model.Participant
}

// RiderGap returns the gap before the rider at position i of n in a wave.
// The last NumFastest riders get the fast gap; every gap is at least MinimumGap.
func RiderGap(g model.GapRules, i, n int) time.Duration {
	gap := max(g.RegularGap, MinimumGap)
	if i >= n-g.NumFastest {
		gap = max(gap, g.FastGap)
	}
	if i == 0 {
		gap = max(gap, g.GapBeforeWave)
	}
	return gap
}

// AllocateWave assigns start slots to an already ordered wave and returns the
// accumulator to hand to the next wave. An empty wave leaves acc unchanged.
func AllocateWave(acc Accumulator, wave model.Wave, ordered []model.Participant) (Accumulator, []Assignment) {
	out := make([]Assignment, 0, len(ordered))
	for i, p := range ordered {
		acc.Clock += RiderGap(wave.Gaps, i, len(ordered))
		out = append(out, Assignment{
			ParticipantID: p.ID,
			WaveID:        wave.ID,
			StartSequence: acc.Next,
			StartTime:     acc.Clock,
		})
		acc.Next++
	}
	return acc, out
}

// Allocate orders every wave by its policy and assigns collision-free start
// slots across the whole event. Groups are processed in the given order.
//
// Returns a conflict Error if a participant appears in more than one group,
// and a policy Error if a wave names an unknown policy. No partial result is
// returned on error.
func Allocate(eventID int64, groups []WaveParticipants, ref time.Time) ([]Assignment, error) {
	seen := make(map[int64]int64)
	acc := NewAccumulator()
	var all []Assignment

	for _, g := range groups {
		ordered, err := SequenceWave(g.Wave, g.Participants, ref)
		if err != nil {
			if se, ok := err.(*Error); ok {
				se.EventID = eventID
			}
			return nil, err
		}
		for _, p := range ordered {
			if prev, dup := seen[p.ID]; dup {
				ce := NewConflictError(eventID, p.ID, model.ErrConflict)
				ce.WaveID = g.Wave.ID
				ce.Details["first_wave_id"] = strconv.FormatInt(prev, 10)
				return nil, ce
			}
			seen[p.ID] = g.Wave.ID
		}

		var assigned []Assignment
		acc, assigned = AllocateWave(acc, g.Wave, ordered)
		all = append(all, assigned...)
	}

	if all == nil {
		all = []Assignment{}
	}
	return all, nil
}

// EntriesFor converts assignments into schedule entries for eventID.
func EntriesFor(eventID int64, assignments []Assignment) []model.Entry {
	entries := make([]model.Entry, len(assignments))
	for i, a := range assignments {
		entries[i] = model.Entry{
			EventID:       eventID,
			ParticipantID: a.ParticipantID,
			StartSequence: a.StartSequence,
			StartTime:     model.DurationPtr(a.StartTime),
		}
	}
	return entries
}
