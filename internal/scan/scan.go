package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"kodisubs/internal/decision"
	"kodisubs/internal/kodidb"
	"kodisubs/internal/language"
	"kodisubs/internal/reconcile"
	"kodisubs/internal/tracks"
)

// FileResolver maps a media path to Kodi's file identifier.
type FileResolver interface {
	FileID(ctx context.Context, path string) (int64, error)
}

// Options tunes which files a run touches and what it does to them.
type Options struct {
	// UpdateOnly leaves files alone once they have a configured choice of
	// the relevant kind.
	UpdateOnly bool
	// FastMode skips the subtitle pass when the effective audio language
	// already matches the target, without inspecting the container unless
	// the audio pass still needs it.
	FastMode bool
	// Audio enables the extra audio track pass after subtitles.
	Audio bool
}

// Summary counts what a run did.
type Summary struct {
	Processed    int
	Skipped      int
	SubtitlesSet int
	AudioSet     int
}

// Orchestrator drives the per-file pipeline: resolve, inspect, decide,
// reconcile.
type Orchestrator struct {
	files      FileResolver
	reconciler *reconcile.Reconciler
	inspector  Inspector
	resolver   decision.Resolver
	target     language.Language
	opts       Options
	logger     *slog.Logger
	out        io.Writer
}

// New assembles an Orchestrator. out receives the human-facing progress
// lines; pass io.Discard to silence them.
func New(files FileResolver, reconciler *reconcile.Reconciler, inspector Inspector, resolver decision.Resolver, target language.Language, opts Options, logger *slog.Logger, out io.Writer) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Orchestrator{
		files:      files,
		reconciler: reconciler,
		inspector:  inspector,
		resolver:   resolver,
		target:     target,
		opts:       opts,
		logger:     logger,
		out:        out,
	}
}

// Run processes paths in order. Per-file failures are logged and counted as
// skips; the run aborts only on context cancellation or an unusable
// database.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (Summary, error) {
	var summary Summary
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fmt.Fprintf(o.out, "[%d/%d] %s\n", i+1, len(paths), path)

		if err := o.processFile(ctx, path, &summary); err != nil {
			if abortErr := classifyAbort(err); abortErr != nil {
				return summary, abortErr
			}
			o.logger.Warn("skipping file", "path", path, "error", err)
			summary.Skipped++
			continue
		}
		summary.Processed++
	}
	o.logger.Info("scan finished",
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("subtitles_set", summary.SubtitlesSet),
		slog.Int("audio_set", summary.AudioSet))
	return summary, nil
}

func (o *Orchestrator) processFile(ctx context.Context, path string, summary *Summary) error {
	fileID, err := o.files.FileID(ctx, path)
	if err != nil {
		return err
	}

	// The settings checks are cheap; inspection is not. Decide what can be
	// updated first so fully-handled files never reach ffprobe.
	canSubtitles, err := o.canUpdateSubtitles(ctx, path, fileID)
	if err != nil {
		return err
	}
	canAudio, err := o.canUpdateAudio(ctx, path, fileID)
	if err != nil {
		return err
	}
	if !canSubtitles && !canAudio {
		return nil
	}

	analysis, err := o.inspector.Analyze(ctx, path, o.target.Code2)
	if err != nil {
		return err
	}

	if canSubtitles {
		if err := o.updateSubtitles(ctx, path, fileID, analysis, summary); err != nil {
			return err
		}
	}
	if canAudio {
		if err := o.updateAudio(ctx, path, fileID, analysis, summary); err != nil {
			return err
		}
	}
	return nil
}

// canUpdateSubtitles applies the update-only and fast-mode guards. Fast mode
// bows out of the subtitle pass only; an enabled audio pass still runs.
func (o *Orchestrator) canUpdateSubtitles(ctx context.Context, path string, fileID int64) (bool, error) {
	if o.opts.UpdateOnly {
		configured, err := o.reconciler.HasSubtitleSettings(ctx, fileID)
		if err != nil {
			return false, err
		}
		if configured {
			o.logger.Debug("subtitle already configured", "path", path)
			return false, nil
		}
	}
	if o.opts.FastMode {
		lang, known, err := o.reconciler.EffectiveAudioLanguage(ctx, fileID)
		if err != nil {
			return false, err
		}
		if known && language.ToISO3(lang) == o.target.Code3 {
			o.logger.Debug("audio already in target language", "path", path)
			return false, nil
		}
	}
	return true, nil
}

func (o *Orchestrator) canUpdateAudio(ctx context.Context, path string, fileID int64) (bool, error) {
	if !o.opts.Audio {
		return false, nil
	}
	if o.opts.UpdateOnly {
		configured, err := o.reconciler.HasAudioSettings(ctx, fileID)
		if err != nil {
			return false, err
		}
		if configured {
			o.logger.Debug("audio already configured", "path", path)
			return false, nil
		}
	}
	return true, nil
}

func (o *Orchestrator) updateSubtitles(ctx context.Context, path string, fileID int64, analysis *tracks.Analysis, summary *Summary) error {
	if len(analysis.Subtitles) == 0 {
		o.logger.Debug("no subtitle tracks", "path", path)
		return nil
	}

	// Subtitles are only worth setting when the default audio plays in a
	// language other than the target, or in one we cannot identify.
	if analysis.DefaultAudio.Language == o.target.Code2 {
		if analysis.HasPreferred && analysis.Preferred.Forced {
			fmt.Fprintf(o.out, "Note: track %d is a forced subtitle track.\n", analysis.Preferred.Index)
		}
		o.logger.Debug("default audio already in target language", "path", path)
		return nil
	}
	if !analysis.HasPreferred {
		fmt.Fprintf(o.out, "No subtitles were detected in your language.\n")
		o.logger.Debug("no subtitle track in target language", "path", path)
		return nil
	}

	index, ok, err := o.resolver.ChooseSubtitle(analysis)
	if err != nil {
		return err
	}
	if !ok {
		o.logger.Debug("subtitle pick declined", "path", path)
		return nil
	}

	applied, err := o.assign(ctx, fileID, reconcile.Subtitle, index)
	if err != nil || !applied {
		return err
	}
	summary.SubtitlesSet++
	return nil
}

func (o *Orchestrator) updateAudio(ctx context.Context, path string, fileID int64, analysis *tracks.Analysis, summary *Summary) error {
	if len(analysis.ExtraAudio) == 0 {
		return nil
	}

	index, ok, err := o.resolver.ChooseAudio(analysis)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	applied, err := o.assign(ctx, fileID, reconcile.Audio, index)
	if err != nil || !applied {
		return err
	}
	summary.AudioSet++
	return nil
}

// assign writes the choice, asking before replacing a conflicting value.
func (o *Orchestrator) assign(ctx context.Context, fileID int64, kind reconcile.Kind, index int) (bool, error) {
	outcome, err := o.reconciler.Assign(ctx, fileID, kind, index, false)
	if err != nil {
		return false, err
	}
	if outcome != reconcile.Conflict {
		return true, nil
	}

	confirmed, err := o.resolver.ConfirmOverwrite(kind)
	if err != nil {
		return false, err
	}
	if !confirmed {
		o.logger.Info("keeping existing setting",
			slog.Int64("file_id", fileID),
			slog.String("kind", kind.String()))
		return false, nil
	}
	if _, err := o.reconciler.Assign(ctx, fileID, kind, index, true); err != nil {
		return false, err
	}
	return true, nil
}

// classifyAbort returns a non-nil error when err must end the whole run.
func classifyAbort(err error) error {
	switch {
	case errors.Is(err, kodidb.ErrUnavailable):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, kodidb.ErrNotFound), errors.Is(err, tracks.ErrNoAudioTracks):
		return nil
	default:
		return nil
	}
}
