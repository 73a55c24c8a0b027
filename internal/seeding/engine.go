package seeding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/roach88/startlist/internal/model"
	"github.com/roach88/startlist/internal/telemetry"
)

// Engine sequences participants into start slots and keeps the schedule of
// each event consistent. Writers (Regenerate, MoveTo) are serialized per
// event; different events proceed independently.
type Engine struct {
	store    ScheduleStore
	resolver ParticipantResolver
	dates    DateSource
	ids      GenerationIDGenerator
	metrics  telemetry.Recorder
	logger   *slog.Logger
	now      func() time.Time
	locks    *eventLocks
}

// Option configures an Engine.
type Option func(*Engine)

// WithDateSource sets the reference date used for age metrics.
func WithDateSource(d DateSource) Option {
	return func(e *Engine) { e.dates = d }
}

// WithGenerationIDs sets the generator naming each regeneration.
func WithGenerationIDs(g GenerationIDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithRecorder sets the metrics recorder. nil keeps the no-op recorder.
func WithRecorder(r telemetry.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.metrics = r
		}
	}
}

// WithLogger sets the structured logger. nil keeps logging discarded.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNow sets the wall clock used for audit timestamps.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine over store and resolver.
//
// Defaults: SystemDate, UUIDv7 generation IDs, no-op metrics, discarded logs.
func New(store ScheduleStore, resolver ParticipantResolver, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		resolver: resolver,
		dates:    SystemDate{},
		ids:      UUIDv7Generator{},
		metrics:  telemetry.NoopRecorder{},
		logger:   telemetry.DiscardLogger(),
		now:      time.Now,
		locks:    newEventLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// resolveWaves returns each wave of event, in stored order, with its participants.
func (e *Engine) resolveWaves(ctx context.Context, event model.Event) ([]WaveParticipants, error) {
	waves := event.OrderedWaves()
	groups := make([]WaveParticipants, 0, len(waves))
	for _, w := range waves {
		ps, err := e.resolver.WaveParticipants(ctx, event, w)
		if err != nil {
			return nil, fmt.Errorf("resolve wave %d: %w", w.ID, err)
		}
		groups = append(groups, WaveParticipants{Wave: w, Participants: ps})
	}
	return groups, nil
}

// Plan computes the full schedule of event without writing it.
func (e *Engine) Plan(ctx context.Context, event model.Event) ([]Assignment, error) {
	groups, err := e.resolveWaves(ctx, event)
	if err != nil {
		return nil, err
	}
	return Allocate(event.ID, groups, e.dates.Today())
}

// Regenerate replaces every entry of event with a freshly allocated schedule.
//
// The delete-then-insert runs as one store transaction under the event's
// writer lock, so concurrent MoveTo calls and readers never see a partial
// entry set. On any error the previous schedule is left in place.
func (e *Engine) Regenerate(ctx context.Context, event model.Event) (model.Seeding, error) {
	unlock := e.locks.lock(event.ID)
	defer unlock()

	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "startlist.regenerate", event.ID)

	seeding, err := e.regenerate(ctx, event)

	telemetry.EndSpan(span, err)
	e.metrics.RecordSeeding(ctx, event.ID, seeding.Entries, time.Since(start), err)
	if err != nil {
		e.logger.Error("regeneration failed",
			slog.Int64("event_id", event.ID),
			slog.String("error", err.Error()))
		return model.Seeding{}, err
	}

	e.logger.Info("start list regenerated",
		slog.Int64("event_id", event.ID),
		slog.Int("entries", seeding.Entries),
		slog.String("generation_id", seeding.GenerationID),
		slog.String("fingerprint", seeding.Fingerprint))
	return seeding, nil
}

func (e *Engine) regenerate(ctx context.Context, event model.Event) (model.Seeding, error) {
	assignments, err := e.Plan(ctx, event)
	if err != nil {
		return model.Seeding{}, err
	}

	entries := EntriesFor(event.ID, assignments)
	fingerprint, err := model.Fingerprint(entries)
	if err != nil {
		return model.Seeding{}, err
	}

	seeding := model.Seeding{
		GenerationID: e.ids.Generate(),
		EventID:      event.ID,
		Entries:      len(entries),
		Fingerprint:  fingerprint,
		CreatedAt:    e.now().UTC(),
	}

	if err := e.store.ReplaceEntries(ctx, event.ID, entries, seeding); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Seeding{}, &Error{
				Code:    ErrCodeConflict,
				Message: "store rejected the generated schedule",
				EventID: event.ID,
				Err:     err,
			}
		}
		return model.Seeding{}, NewStoreError(event.ID, "replace entries", err)
	}

	telemetry.AddSpanEvent(ctx, "entries.replaced", attribute.Int("entries", len(entries)))
	return seeding, nil
}
