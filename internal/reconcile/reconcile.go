package reconcile

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind selects which stream setting an assignment targets.
type Kind int

const (
	Audio Kind = iota
	Subtitle
)

func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome reports how an assignment resolved.
type Outcome int

const (
	// Applied means the requested index is now the persisted choice.
	Applied Outcome = iota
	// Conflict means a different index was already chosen and force was off;
	// nothing was written.
	Conflict
)

// Unset is the sentinel Kodi stores for "no stream chosen".
const Unset = -1

// Settings is the slice of a Kodi settings row the reconciler touches.
type Settings struct {
	AudioStream    int
	SubtitleStream int
	SubtitlesOn    bool
}

// Ops is the set of settings-row operations available inside a transaction.
type Ops interface {
	// Settings returns the row for fileID, reporting false when none exists.
	Settings(fileID int64) (Settings, bool, error)
	// InsertDefaults creates a row for fileID with the default profile.
	InsertDefaults(fileID int64) error
	SetAudioStream(fileID int64, index int) error
	// SetSubtitleStream persists index and switches subtitles on.
	SetSubtitleStream(fileID int64, index int) error
	EnableSubtitles(fileID int64) error
}

// Store provides transactional access to settings rows plus the read-only
// stream details Kodi collected for each file.
type Store interface {
	// Within runs fn inside one transaction; fn's writes commit together or
	// not at all.
	Within(ctx context.Context, fn func(Ops) error) error
	// AudioLanguages returns the per-stream audio language list for fileID,
	// in stream order.
	AudioLanguages(ctx context.Context, fileID int64) ([]string, error)
}

// Reconciler applies track assignments against a settings store.
type Reconciler struct {
	store  Store
	logger *slog.Logger
}

// New builds a Reconciler. logger may be nil.
func New(store Store, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// Assign records trackIndex as the chosen stream of the given kind for
// fileID. An existing different choice yields Conflict unless force is set.
// Subtitle assignments always leave subtitles switched on, including the
// idempotent case where the index already matches.
func (r *Reconciler) Assign(ctx context.Context, fileID int64, kind Kind, trackIndex int, force bool) (Outcome, error) {
	outcome := Applied
	err := r.store.Within(ctx, func(ops Ops) error {
		settings, exists, err := ops.Settings(fileID)
		if err != nil {
			return err
		}

		current := Unset
		if exists {
			if kind == Subtitle {
				current = settings.SubtitleStream
			} else {
				current = settings.AudioStream
			}
		}

		switch {
		case current == trackIndex:
			if kind == Subtitle && !settings.SubtitlesOn {
				return ops.EnableSubtitles(fileID)
			}
			return nil
		case current != Unset && !force:
			outcome = Conflict
			return nil
		}

		if !exists {
			if err := ops.InsertDefaults(fileID); err != nil {
				return err
			}
		}
		if kind == Subtitle {
			return ops.SetSubtitleStream(fileID, trackIndex)
		}
		return ops.SetAudioStream(fileID, trackIndex)
	})
	if err != nil {
		return Applied, fmt.Errorf("assign %s track: %w", kind, err)
	}
	if r.logger != nil && outcome == Applied {
		r.logger.Debug("track assignment applied",
			slog.Int64("file_id", fileID),
			slog.String("kind", kind.String()),
			slog.Int("index", trackIndex),
			slog.Bool("force", force))
	}
	return outcome, nil
}

// EffectiveAudioLanguage derives the language Kodi will play for fileID: the
// configured audio stream index (absent or -1 meaning the first stream)
// looked up in the recorded per-stream language list. Reports false when the
// stream list is empty (Kodi has not inspected the file) or the index points
// outside it (likely an external audio stream); both are non-fatal.
func (r *Reconciler) EffectiveAudioLanguage(ctx context.Context, fileID int64) (string, bool, error) {
	index := 0
	err := r.store.Within(ctx, func(ops Ops) error {
		settings, exists, err := ops.Settings(fileID)
		if err != nil {
			return err
		}
		if exists && settings.AudioStream != Unset {
			index = settings.AudioStream
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read audio stream setting: %w", err)
	}

	streams, err := r.store.AudioLanguages(ctx, fileID)
	if err != nil {
		return "", false, fmt.Errorf("read stream details: %w", err)
	}
	if len(streams) == 0 {
		r.warn("no stream details recorded; did Kodi inspect the file?", fileID)
		return "", false, nil
	}
	if index >= len(streams) {
		r.warn("configured audio stream not inside the file; assuming external", fileID)
		return "", false, nil
	}
	return streams[index], true, nil
}

// HasSubtitleSettings reports whether fileID already has a fully configured
// subtitle choice: a concrete stream index with subtitles switched on.
func (r *Reconciler) HasSubtitleSettings(ctx context.Context, fileID int64) (bool, error) {
	configured := false
	err := r.store.Within(ctx, func(ops Ops) error {
		settings, exists, err := ops.Settings(fileID)
		if err != nil {
			return err
		}
		configured = exists && settings.SubtitleStream != Unset && settings.SubtitlesOn
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read subtitle settings: %w", err)
	}
	return configured, nil
}

// HasAudioSettings reports whether fileID already has an explicit audio
// stream choice.
func (r *Reconciler) HasAudioSettings(ctx context.Context, fileID int64) (bool, error) {
	configured := false
	err := r.store.Within(ctx, func(ops Ops) error {
		settings, exists, err := ops.Settings(fileID)
		if err != nil {
			return err
		}
		configured = exists && settings.AudioStream != Unset
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read audio settings: %w", err)
	}
	return configured, nil
}

func (r *Reconciler) warn(msg string, fileID int64) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg, slog.Int64("file_id", fileID))
}
