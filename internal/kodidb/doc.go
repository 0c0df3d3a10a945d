// Package kodidb provides access to the settings slice of a Kodi video
// database (MyVideos*.db).
//
// The database belongs to Kodi; this package only reads the movie and
// streamdetails tables and reads/writes the settings table, always through
// parameterized queries. A lock file next to the database enforces the
// single-writer assumption for the duration of a run. Driver-level failures
// surface as ErrUnavailable, which callers treat as fatal for the whole run;
// an unknown file path surfaces as ErrNotFound and is skippable.
package kodidb
