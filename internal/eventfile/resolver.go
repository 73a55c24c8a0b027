package eventfile

import (
	"context"
	"fmt"

	"github.com/roach88/startlist/internal/model"
)

// Resolver assigns the participants of one definition to waves.
type Resolver struct {
	participants []model.Participant
}

// NewResolver returns a Resolver over participants.
func NewResolver(participants []model.Participant) *Resolver {
	return &Resolver{participants: participants}
}

// Participants returns every registered participant, in file order.
func (r *Resolver) Participants() []model.Participant {
	return r.participants
}

// WaveParticipants returns the participants whose category wave lists,
// restricted to event.OptionID when it is set.
func (r *Resolver) WaveParticipants(_ context.Context, event model.Event, wave model.Wave) ([]model.Participant, error) {
	out := []model.Participant{}
	for _, p := range r.participants {
		if !wave.HasCategory(p.Category) {
			continue
		}
		if event.OptionID != 0 && !p.HasOption(event.OptionID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Open loads the definition at path and returns the event with a resolver
// for its participants.
func Open(path string) (model.Event, *Resolver, error) {
	def, err := Load(path)
	if err != nil {
		return model.Event{}, nil, err
	}
	event, participants, err := def.Model()
	if err != nil {
		return model.Event{}, nil, fmt.Errorf("invalid event file %s: %w", path, err)
	}
	return event, NewResolver(participants), nil
}
