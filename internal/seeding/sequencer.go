package seeding

import (
	"slices"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// SequenceWave orders the participants of one wave by the wave's policy.
// The input slice is not modified.
func SequenceWave(wave model.Wave, participants []model.Participant, ref time.Time) ([]model.Participant, error) {
	seq, err := SequencerFor(wave.Policy)
	if err != nil {
		if se, ok := err.(*Error); ok {
			se.WaveID = wave.ID
		}
		return nil, err
	}

	keys := make(map[int64]OrderKey, len(participants))
	for _, p := range participants {
		keys[p.ID] = seq.Key(p, ref)
	}

	ordered := slices.Clone(participants)
	slices.SortStableFunc(ordered, func(a, b model.Participant) int {
		return Compare(keys[a.ID], keys[b.ID])
	})
	return ordered, nil
}
