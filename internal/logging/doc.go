// Package logging assembles structured slog loggers and formatting helpers used
// across tubeprobe.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes attribute helpers so probes emit consistent keys (component,
// event_type, error_hint, session_id). Probe output goes to stdout; log lines
// go to stderr and, optionally, an append-only log file. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
