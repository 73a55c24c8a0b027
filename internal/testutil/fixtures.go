package testutil

import (
	"context"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// ParticipantOption customizes a fixture participant.
type ParticipantOption func(*model.Participant)

// Bib sets the bib number.
func Bib(n int) ParticipantOption {
	return func(p *model.Participant) { p.Bib = n }
}

// Speed sets the estimated speed.
func Speed(kmh float64) ParticipantOption {
	return func(p *model.Participant) { p.EstSpeed = kmh }
}

// Born sets the date of birth from YYYY-MM-DD. Panics on malformed input.
func Born(date string) ParticipantOption {
	dob, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return func(p *model.Participant) { p.DateOfBirth = dob }
}

// SeedEarly flags the participant to start ahead of everyone else.
func SeedEarly() ParticipantOption {
	return func(p *model.Participant) { p.SeedEarly = true }
}

// Category sets the category code.
func Category(code string) ParticipantOption {
	return func(p *model.Participant) { p.Category = code }
}

// Registered sets the registration time.
func Registered(t time.Time) ParticipantOption {
	return func(p *model.Participant) { p.RegisteredAt = t }
}

// Participant builds a participant born 2000-01-01 in category "OPEN".
func Participant(id int64, opts ...ParticipantOption) model.Participant {
	p := model.Participant{
		ID:          id,
		Name:        "rider",
		Category:    "OPEN",
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Wave builds a wave with the given policy and gaps over category "OPEN".
func Wave(id int64, sequence int, policy model.Policy, gaps model.GapRules) model.Wave {
	return model.Wave{
		ID:         id,
		Name:       "wave",
		Sequence:   sequence,
		Policy:     policy,
		Laps:       1,
		Gaps:       gaps,
		Categories: []string{"OPEN"},
	}
}

// Event builds a seeded event anchored at 2026-06-14 09:00 UTC.
func Event(id int64, waves ...model.Wave) model.Event {
	return model.Event{
		ID:              id,
		Name:            "event",
		Start:           time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC),
		SeededStartlist: true,
		Waves:           waves,
	}
}

// StaticResolver maps wave IDs to fixed participant lists.
type StaticResolver struct {
	Waves map[int64][]model.Participant
	Err   error
}

// NewStaticResolver returns an empty StaticResolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{Waves: make(map[int64][]model.Participant)}
}

// Add appends participants to waveID and returns the resolver.
func (r *StaticResolver) Add(waveID int64, ps ...model.Participant) *StaticResolver {
	r.Waves[waveID] = append(r.Waves[waveID], ps...)
	return r
}

// WaveParticipants returns a copy of the participants registered for wave.
func (r *StaticResolver) WaveParticipants(_ context.Context, _ model.Event, wave model.Wave) ([]model.Participant, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]model.Participant{}, r.Waves[wave.ID]...), nil
}
