// Package logging assembles the structured slog loggers used across reelfx.
//
// It owns the console and JSON handlers, level and output plumbing, the
// standard field keys, and context-aware helpers that tag log lines with the
// session, render request and frame carried by reqctx. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
