package kodidb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"kodisubs/internal/reconcile"
)

// Store wraps a Kodi video database connection. It implements
// reconcile.Store.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open connects to the Kodi database at path and takes the companion lock
// file. The database must already exist; kodisubs never creates one.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrUnavailable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}

	lock := flock.New(lockPath(path))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire lock: %w", ErrUnavailable, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: another kodisubs run holds %s", ErrUnavailable, lock.Path())
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: open: %w", ErrUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: apply pragma: %w", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}

	return &Store{db: db, lock: lock, path: path}, nil
}

// Close releases the database connection and the lock file.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// FileID resolves a media file path to Kodi's file identifier. Matching is
// by filename suffix, not the whole path: Kodi may know the file under a
// different mount or protocol prefix. Returns ErrNotFound when Kodi has no
// matching movie entry.
func (s *Store) FileID(ctx context.Context, path string) (int64, error) {
	name := filepath.Base(path)
	row := s.db.QueryRowContext(ctx, `SELECT idFile FROM movie WHERE c22 LIKE ? LIMIT 1`, "%"+name)

	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("%w: lookup file id: %w", ErrUnavailable, err)
	}
	return id, nil
}

// AudioLanguages returns the recorded audio stream languages for fileID in
// stream order. Empty when Kodi has not collected stream details yet.
func (s *Store) AudioLanguages(ctx context.Context, fileID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strAudioLanguage FROM streamdetails WHERE idFile = ? AND iStreamType = 1`, fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: query stream details: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var lang sql.NullString
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("%w: scan stream details: %w", ErrUnavailable, err)
		}
		languages = append(languages, lang.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate stream details: %w", ErrUnavailable, err)
	}
	return languages, nil
}

// Within runs fn inside one transaction so a read-check-write assignment is
// observable as a unit.
func (s *Store) Within(ctx context.Context, fn func(reconcile.Ops) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrUnavailable, err)
	}
	if err := fn(txOps{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrUnavailable, err)
	}
	return nil
}

func lockPath(dbPath string) string {
	return dbPath + ".lock"
}
