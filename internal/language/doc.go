// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// stream tag extraction) are consolidated here so the track selector, the
// settings reconciler, and the CLI agree on a single spelling of the user's
// preferred language.
package language
