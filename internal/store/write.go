package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// ReplaceEntries deletes every entry of eventID and inserts entries, plus the
// seeding audit row, in a single transaction.
//
// Deletion runs in batches of deleteBatchSize rows so that no single
// statement grows with the event size. A uniqueness violation on insert is
// returned wrapped around model.ErrConflict and the transaction is rolled
// back, leaving the previous schedule intact.
func (s *Store) ReplaceEntries(ctx context.Context, eventID int64, entries []model.Entry, seeding model.Seeding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace entries: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := s.deleteEntries(ctx, tx, eventID); err != nil {
		return fmt.Errorf("replace entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries
		(event_id, participant_id, start_sequence, start_time_ns, finish_time_ns, adjustment_time_ns, adjustment_note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("replace entries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.EventID != eventID {
			return fmt.Errorf("replace entries: entry for participant %d belongs to event %d, not %d",
				e.ParticipantID, e.EventID, eventID)
		}
		_, err := stmt.ExecContext(ctx,
			e.EventID,
			e.ParticipantID,
			e.StartSequence,
			nullDuration(e.StartTime),
			nullDuration(e.FinishTime),
			nullDuration(e.AdjustmentTime),
			e.AdjustmentNote,
		)
		if err != nil {
			return fmt.Errorf("replace entries: insert participant %d: %w", e.ParticipantID, classify(err))
		}
	}

	if seeding.GenerationID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO seedings (generation_id, event_id, entries, fingerprint, created_at)
			VALUES (?, ?, ?, ?, ?)
		`,
			seeding.GenerationID,
			eventID,
			seeding.Entries,
			seeding.Fingerprint,
			seeding.CreatedAt.UTC().Format(timestampLayout),
		)
		if err != nil {
			return fmt.Errorf("replace entries: record seeding: %w", classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace entries: commit: %w", err)
	}
	return nil
}

// deleteEntries removes all entries of eventID in bounded batches and
// returns how many rows were deleted.
func (s *Store) deleteEntries(ctx context.Context, tx *sql.Tx, eventID int64) (int64, error) {
	var total int64
	for {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM entries WHERE rowid IN (
				SELECT rowid FROM entries WHERE event_id = ? LIMIT ?
			)
		`, eventID, s.deleteBatchSize)
		if err != nil {
			return total, fmt.Errorf("delete batch: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("delete batch: rows affected: %w", err)
		}
		total += n
		if n == 0 {
			return total, nil
		}
	}
}

// nullDuration stores a duration as nanoseconds, or NULL.
func nullDuration(d *time.Duration) sql.NullInt64 {
	if d == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*d), Valid: true}
}
