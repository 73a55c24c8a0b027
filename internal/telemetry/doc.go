// Package telemetry provides structured logging helpers, metrics, and tracing
// for the start sequencing engine.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//   - Opt-in OTLP/HTTP export via Setup
//
// All features have no-op implementations when disabled.
package telemetry
