package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/startlist/internal/model"
)

const entryColumns = `event_id, participant_id, start_sequence, start_time_ns,
	finish_time_ns, adjustment_time_ns, adjustment_note`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ListEntries returns the entries of eventID ordered by start sequence.
// Returns an empty slice (not nil) if the event has no entries.
func (s *Store) ListEntries(ctx context.Context, eventID int64) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE event_id = ?
		ORDER BY start_sequence ASC, participant_id ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetEntry returns the entry of one participant in eventID.
// Returns model.ErrNotFound if the participant has no entry.
func (s *Store) GetEntry(ctx context.Context, eventID, participantID int64) (model.Entry, error) {
	return getEntry(ctx, s.db, eventID, participantID)
}

// ListSeedings returns the regeneration audit log of eventID, oldest first.
func (s *Store) ListSeedings(ctx context.Context, eventID int64) ([]model.Seeding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT generation_id, event_id, entries, fingerprint, created_at
		FROM seedings
		WHERE event_id = ?
		ORDER BY created_at ASC, generation_id ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query seedings: %w", err)
	}
	defer rows.Close()

	seedings := []model.Seeding{}
	for rows.Next() {
		var sd model.Seeding
		var createdAt string
		if err := rows.Scan(&sd.GenerationID, &sd.EventID, &sd.Entries, &sd.Fingerprint, &createdAt); err != nil {
			return nil, fmt.Errorf("scan seeding: %w", err)
		}
		sd.CreatedAt, err = time.Parse(timestampLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse seeding created_at: %w", err)
		}
		seedings = append(seedings, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seedings: %w", err)
	}
	return seedings, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getEntry(ctx context.Context, q querier, eventID, participantID int64) (model.Entry, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE event_id = ? AND participant_id = ?
	`, eventID, participantID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, fmt.Errorf("participant %d: %w", participantID, model.ErrNotFound)
	}
	return e, err
}

// entryAt returns the single entry holding sequence in eventID.
func entryAt(ctx context.Context, q querier, eventID int64, sequence int) (model.Entry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE event_id = ? AND start_sequence = ?
		ORDER BY participant_id ASC
		LIMIT 2
	`, eventID, sequence)
	if err != nil {
		return model.Entry{}, fmt.Errorf("query entry at %d: %w", sequence, err)
	}
	defer rows.Close()

	var found []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return model.Entry{}, err
		}
		found = append(found, e)
	}
	if err := rows.Err(); err != nil {
		return model.Entry{}, fmt.Errorf("iterate entry at %d: %w", sequence, err)
	}

	switch len(found) {
	case 0:
		return model.Entry{}, fmt.Errorf("sequence %d: %w", sequence, model.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return model.Entry{}, fmt.Errorf("sequence %d: %w", sequence, model.ErrAmbiguous)
	}
}

func scanEntry(r rowScanner) (model.Entry, error) {
	var e model.Entry
	var start, finish, adjust sql.NullInt64
	if err := r.Scan(
		&e.EventID, &e.ParticipantID, &e.StartSequence,
		&start, &finish, &adjust, &e.AdjustmentNote,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Entry{}, err
		}
		return model.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.StartTime = durationOf(start)
	e.FinishTime = durationOf(finish)
	e.AdjustmentTime = durationOf(adjust)
	return e, nil
}

func durationOf(n sql.NullInt64) *time.Duration {
	if !n.Valid {
		return nil
	}
	d := time.Duration(n.Int64)
	return &d
}
