// Package testsupport provides shared fixtures for kodisubs tests: temp
// configs and disposable Kodi databases carrying the schema subset the store
// touches.
package testsupport

import (
	"path/filepath"
	"testing"

	"kodisubs/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(base, "MyVideos131.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
