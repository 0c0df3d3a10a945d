// Package logging constructs the slog loggers used across kodisubs.
//
// Two output formats are supported: a compact console format for humans and
// JSON for log scrapers. Console lines promote the "component" attribute
// into the message prefix so per-package loggers read naturally.
package logging
