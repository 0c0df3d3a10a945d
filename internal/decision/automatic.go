package decision

import (
	"log/slog"

	"kodisubs/internal/reconcile"
	"kodisubs/internal/tracks"
)

// Automatic resolves every question without human input. It accepts the
// preferred subtitle only when the default audio language is known, never
// picks extra audio, and never authorizes an overwrite.
type Automatic struct {
	logger *slog.Logger
}

// NewAutomatic returns a hands-off resolver.
func NewAutomatic(logger *slog.Logger) *Automatic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Automatic{logger: logger}
}

func (a *Automatic) ChooseSubtitle(analysis *tracks.Analysis) (int, bool, error) {
	if !analysis.HasPreferred {
		return 0, false, nil
	}
	if analysis.DefaultAudio.Language == "" {
		a.logger.Debug("declining subtitle pick, audio language unknown")
		return 0, false, nil
	}
	return analysis.Preferred.Index, true, nil
}

func (a *Automatic) ChooseAudio(analysis *tracks.Analysis) (int, bool, error) {
	return 0, false, nil
}

func (a *Automatic) ConfirmOverwrite(kind reconcile.Kind) (bool, error) {
	a.logger.Debug("refusing overwrite", "kind", kind.String())
	return false, nil
}
