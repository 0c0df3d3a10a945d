// Package scan walks a batch of movie files and reconciles each one's Kodi
// stream settings with the tracks found inside the file.
//
// Per-file problems (unknown file, unreadable container, no audio) skip that
// file and move on; only an unusable database or a cancelled context aborts
// the batch.
package scan
