package seeding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/startlist/internal/model"
	"github.com/roach88/startlist/internal/telemetry"
)

// Relocation reports the outcome of MoveTo.
//
// When Moved is false the move stopped early: the entry keeps every swap
// made before the gap (To is where it ended up) and Reason says why. Treat
// this as "possibly partially applied" and regenerate; do not retry blindly.
type Relocation struct {
	Moved  bool   `json:"moved"`
	Reason string `json:"reason,omitempty"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Steps  int    `json:"steps"`
}

// MoveTo moves a participant's entry to target by a chain of adjacent swaps
// of (start sequence, start time). Each swap is persisted as it happens, so
// the sequence stays dense at every step. Start times travel with the slot:
// the moved entry takes its new neighbour's time and no gap rule is
// re-applied.
//
// A missing or duplicated neighbour ends the move with Moved=false; that is
// a result, not an error. Errors are returned only for store failures, which
// roll back the whole move.
func (e *Engine) MoveTo(ctx context.Context, eventID, participantID int64, target int) (Relocation, error) {
	unlock := e.locks.lock(eventID)
	defer unlock()

	ctx, span := telemetry.StartSpan(ctx, "startlist.move", eventID)

	var result Relocation
	err := e.store.Relocate(ctx, eventID, func(tx model.ScheduleTx) error {
		var err error
		result, err = relocate(ctx, tx, participantID, target)
		return err
	})

	telemetry.EndSpan(span, err)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return Relocation{}, fmt.Errorf("participant %d has no entry in event %d: %w", participantID, eventID, err)
		}
		return Relocation{}, NewStoreError(eventID, "relocate entry", err)
	}

	e.metrics.RecordRelocation(ctx, eventID, result.Steps, result.Moved)
	if result.Moved {
		e.logger.Info("entry moved",
			slog.Int64("event_id", eventID),
			slog.Int64("participant_id", participantID),
			slog.Int("from", result.From),
			slog.Int("to", result.To),
			slog.Int("steps", result.Steps))
	} else {
		e.logger.Warn("entry move stopped at a gap",
			slog.Int64("event_id", eventID),
			slog.Int64("participant_id", participantID),
			slog.Int("target", target),
			slog.Int("reached", result.To),
			slog.String("reason", result.Reason))
	}
	return result, nil
}

// relocate walks the entry toward target one neighbour at a time.
// The loop runs at most |target-from| times.
func relocate(ctx context.Context, tx model.ScheduleTx, participantID int64, target int) (Relocation, error) {
	self, err := tx.Entry(ctx, participantID)
	if err != nil {
		return Relocation{}, err
	}

	result := Relocation{From: self.StartSequence, To: self.StartSequence}
	for self.StartSequence != target {
		dir := 1
		if self.StartSequence > target {
			dir = -1
		}

		neighbour, err := tx.EntryAt(ctx, self.StartSequence+dir)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrAmbiguous) {
				gap := &Error{
					Code:    ErrCodeRelocationGap,
					Message: fmt.Sprintf("no single entry at sequence %d", self.StartSequence+dir),
					Err:     err,
				}
				result.Reason = gap.Error()
				return result, nil
			}
			return Relocation{}, err
		}

		if self, _, err = tx.Swap(ctx, self, neighbour); err != nil {
			return Relocation{}, err
		}
		result.Steps++
		result.To = self.StartSequence
	}

	result.Moved = true
	return result, nil
}
