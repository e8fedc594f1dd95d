// Package logging assembles the structured slog loggers shared by the tracker
// service and the CLI commands.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so operations automatically tag log lines
// with entry IDs and per-invocation run IDs. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
