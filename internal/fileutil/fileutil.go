// Package fileutil provides small filesystem helpers shared across packages.
package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// Exists reports whether path refers to an existing file or directory.
// Permission errors are treated as existing: the path is there even if
// this process cannot read it.
func Exists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}

// IsRegular reports whether path exists and is a regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
