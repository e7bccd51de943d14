// Package logging assembles structured slog loggers and formatting helpers used
// across spiritlog.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so every line of a run carries
// its run_id. Warnings for recoverable conditions (unresolved names, skipped
// lines) go through WarnWithContext so they share event_type, error_hint and
// impact fields. A no-op logger is provided for tests and wiring code.
package logging
