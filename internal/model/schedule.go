package model

import "context"

// ScheduleTx is a transactional view of one event's entries, used to
// relocate an entry step by step. Every Swap is persisted before it returns.
type ScheduleTx interface {
	// Entry returns the entry of participantID.
	// Returns ErrNotFound if the participant has no entry.
	Entry(ctx context.Context, participantID int64) (Entry, error)

	// EntryAt returns the entry holding sequence.
	// Returns ErrNotFound for a hole and ErrAmbiguous for a duplicate.
	EntryAt(ctx context.Context, sequence int) (Entry, error)

	// Swap exchanges StartSequence and StartTime between a and b and
	// returns both entries as persisted.
	Swap(ctx context.Context, a, b Entry) (Entry, Entry, error)
}
