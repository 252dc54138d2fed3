// Package logging builds slog loggers from murmur configuration and
// re-exports the attribute helpers components use for structured fields.
//
// Components derive their own logger with
// logger.With(logging.String("component", name)) so every line carries its
// origin. The console format is for interactive use; json is for log
// shippers.
package logging
