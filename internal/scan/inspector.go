package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kodisubs/internal/media/ffprobe"
	"kodisubs/internal/tracks"
)

// Inspector turns a media file into a track analysis for one target
// language.
type Inspector interface {
	Analyze(ctx context.Context, path string, lang2 string) (*tracks.Analysis, error)
}

// FFprobeInspector inspects files by running ffprobe and checking for a
// sidecar subtitle next to the file.
type FFprobeInspector struct {
	Binary  string
	Timeout time.Duration
	Logger  *slog.Logger
}

func (f *FFprobeInspector) Analyze(ctx context.Context, path string, lang2 string) (*tracks.Analysis, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, f.Binary, path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	audio, subs := tracks.FromProbe(result)
	return tracks.Analyze(audio, subs, lang2, tracks.DetectSidecar(path), f.Logger)
}
