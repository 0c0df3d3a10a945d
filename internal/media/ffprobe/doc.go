// Package ffprobe shells out to ffprobe to inspect media containers.
//
// It decodes the JSON stream list into typed structures, exposing the
// per-stream metadata the track selector cares about: codec, language tags,
// titles, and default/forced dispositions.
package ffprobe
