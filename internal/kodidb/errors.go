package kodidb

import "errors"

var (
	// ErrNotFound marks a file path Kodi has no record of. Per-file,
	// skippable.
	ErrNotFound = errors.New("file not in database")
	// ErrUnavailable marks a database that cannot be used at all. Fatal for
	// the whole run.
	ErrUnavailable = errors.New("database unavailable")
)
