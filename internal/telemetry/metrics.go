package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder records engine metrics.
// Use NewRecorder() for OTel metrics or NoopRecorder{} when disabled.
type Recorder interface {
	// RecordSeeding records a full regeneration of an event.
	RecordSeeding(ctx context.Context, eventID int64, entries int, duration time.Duration, err error)

	// RecordRelocation records a single-entry move.
	RecordRelocation(ctx context.Context, eventID int64, steps int, moved bool)
}

type otelRecorder struct {
	seedRuns    metric.Int64Counter
	seedEntries metric.Int64Histogram
	seedLatency metric.Float64Histogram
	seedErrors  metric.Int64Counter
	moveRuns    metric.Int64Counter
	moveSteps   metric.Int64Histogram
}

var (
	defaultRecorder     *otelRecorder
	defaultRecorderOnce sync.Once
	defaultRecorderErr  error
)

func getDefaultRecorder() (*otelRecorder, error) {
	defaultRecorderOnce.Do(func() {
		defaultRecorder, defaultRecorderErr = newOtelRecorder()
	})
	return defaultRecorder, defaultRecorderErr
}

func newOtelRecorder() (*otelRecorder, error) {
	meter := otel.Meter("startlist")

	seedRuns, err := meter.Int64Counter("startlist.seed.runs",
		metric.WithDescription("Number of start list regenerations"),
	)
	if err != nil {
		return nil, err
	}

	seedEntries, err := meter.Int64Histogram("startlist.seed.entries",
		metric.WithDescription("Entries written per regeneration"),
	)
	if err != nil {
		return nil, err
	}

	seedLatency, err := meter.Float64Histogram("startlist.seed.latency_ms",
		metric.WithDescription("Regeneration latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	seedErrors, err := meter.Int64Counter("startlist.seed.errors",
		metric.WithDescription("Number of failed regenerations"),
	)
	if err != nil {
		return nil, err
	}

	moveRuns, err := meter.Int64Counter("startlist.move.runs",
		metric.WithDescription("Number of entry relocations"),
	)
	if err != nil {
		return nil, err
	}

	moveSteps, err := meter.Int64Histogram("startlist.move.steps",
		metric.WithDescription("Adjacent swaps per relocation"),
	)
	if err != nil {
		return nil, err
	}

	return &otelRecorder{
		seedRuns:    seedRuns,
		seedEntries: seedEntries,
		seedLatency: seedLatency,
		seedErrors:  seedErrors,
		moveRuns:    moveRuns,
		moveSteps:   moveSteps,
	}, nil
}

// NewRecorder returns a Recorder that uses the global OTel meter provider.
// If metrics initialization fails, returns a no-op recorder.
func NewRecorder() Recorder {
	r, err := getDefaultRecorder()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopRecorder{}
	}
	return r
}

// RecordSeeding records a regeneration.
func (r *otelRecorder) RecordSeeding(ctx context.Context, eventID int64, entries int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.Int64("event_id", eventID),
		attribute.Bool("success", err == nil),
	)
	r.seedRuns.Add(ctx, 1, attrs)
	r.seedLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		r.seedErrors.Add(ctx, 1, attrs)
		return
	}
	r.seedEntries.Record(ctx, int64(entries), attrs)
}

// RecordRelocation records a move.
func (r *otelRecorder) RecordRelocation(ctx context.Context, eventID int64, steps int, moved bool) {
	attrs := metric.WithAttributes(
		attribute.Int64("event_id", eventID),
		attribute.Bool("moved", moved),
	)
	r.moveRuns.Add(ctx, 1, attrs)
	r.moveSteps.Record(ctx, int64(steps), attrs)
}
