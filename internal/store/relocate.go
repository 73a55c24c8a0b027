package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/startlist/internal/model"
)

// Relocate runs fn against a transaction scoped to eventID.
// Commits when fn returns nil, rolls back otherwise.
func (s *Store) Relocate(ctx context.Context, eventID int64, fn func(tx model.ScheduleTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("relocate: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&scheduleTx{tx: tx, eventID: eventID}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("relocate: commit: %w", err)
	}
	return nil
}

// scheduleTx implements model.ScheduleTx over one SQL transaction.
type scheduleTx struct {
	tx      *sql.Tx
	eventID int64
}

func (t *scheduleTx) Entry(ctx context.Context, participantID int64) (model.Entry, error) {
	return getEntry(ctx, t.tx, t.eventID, participantID)
}

func (t *scheduleTx) EntryAt(ctx context.Context, sequence int) (model.Entry, error) {
	return entryAt(ctx, t.tx, t.eventID, sequence)
}

// Swap parks a, moves b into a's slot, then moves a into b's slot.
func (t *scheduleTx) Swap(ctx context.Context, a, b model.Entry) (model.Entry, model.Entry, error) {
	steps := []struct {
		participantID int64
		sequence      int
		entry         *model.Entry
	}{
		{a.ParticipantID, parkedSequence, nil},
		{b.ParticipantID, a.StartSequence, &a},
		{a.ParticipantID, b.StartSequence, &b},
	}

	for _, st := range steps {
		var res sql.Result
		var err error
		if st.entry == nil {
			res, err = t.tx.ExecContext(ctx, `
				UPDATE entries SET start_sequence = ?
				WHERE event_id = ? AND participant_id = ?
			`, st.sequence, t.eventID, st.participantID)
		} else {
			res, err = t.tx.ExecContext(ctx, `
				UPDATE entries SET start_sequence = ?, start_time_ns = ?
				WHERE event_id = ? AND participant_id = ?
			`, st.sequence, nullDuration(st.entry.StartTime), t.eventID, st.participantID)
		}
		if err != nil {
			return model.Entry{}, model.Entry{}, fmt.Errorf("swap %d<->%d: %w", a.ParticipantID, b.ParticipantID, classify(err))
		}
		if n, err := res.RowsAffected(); err != nil {
			return model.Entry{}, model.Entry{}, fmt.Errorf("swap: rows affected: %w", err)
		} else if n != 1 {
			return model.Entry{}, model.Entry{}, fmt.Errorf("swap participant %d: %w", st.participantID, model.ErrNotFound)
		}
	}

	a.StartSequence, b.StartSequence = b.StartSequence, a.StartSequence
	a.StartTime, b.StartTime = b.StartTime, a.StartTime
	return a, b, nil
}
