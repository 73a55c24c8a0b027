package seeding

import (
	"context"

	"github.com/roach88/startlist/internal/model"
)

// ScheduleStore persists the entries of each event.
//
// Implementations must guarantee (event, participant) and
// (event, start_sequence) uniqueness and report violations wrapped around
// model.ErrConflict.
type ScheduleStore interface {
	// ReplaceEntries deletes every entry of eventID and writes entries plus
	// the seeding audit record as one atomic unit. Readers observe either the
	// old or the new entry set, never a mix.
	ReplaceEntries(ctx context.Context, eventID int64, entries []model.Entry, seeding model.Seeding) error

	// ListEntries returns the entries of eventID ordered by start sequence.
	ListEntries(ctx context.Context, eventID int64) ([]model.Entry, error)

	// GetEntry returns the entry of one participant, or model.ErrNotFound.
	GetEntry(ctx context.Context, eventID, participantID int64) (model.Entry, error)

	// Relocate runs fn in a transaction scoped to eventID. The transaction
	// commits when fn returns nil and rolls back otherwise.
	Relocate(ctx context.Context, eventID int64, fn func(tx model.ScheduleTx) error) error
}

// ParticipantResolver resolves wave membership. The engine treats the
// returned list as already filtered to the wave.
type ParticipantResolver interface {
	WaveParticipants(ctx context.Context, event model.Event, wave model.Wave) ([]model.Participant, error)
}
