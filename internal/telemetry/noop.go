package telemetry

import (
	"context"
	"time"
)

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// RecordSeeding does nothing.
func (NoopRecorder) RecordSeeding(context.Context, int64, int, time.Duration, error) {}

// RecordRelocation does nothing.
func (NoopRecorder) RecordRelocation(context.Context, int64, int, bool) {}
