package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"kodisubs/internal/fileutil"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !fileutil.Exists(file) {
		t.Error("expected file to exist")
	}
	if !fileutil.Exists(dir) {
		t.Error("expected directory to exist")
	}
	if fileutil.Exists(filepath.Join(dir, "missing.srt")) {
		t.Error("expected missing path to not exist")
	}
}

func TestIsRegular(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(file, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !fileutil.IsRegular(file) {
		t.Error("expected regular file")
	}
	if fileutil.IsRegular(dir) {
		t.Error("directory should not be regular")
	}
}
