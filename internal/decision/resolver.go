package decision

import (
	"kodisubs/internal/reconcile"
	"kodisubs/internal/tracks"
)

// Resolver answers the questions the scan orchestrator cannot answer on its
// own. Every method that picks a track returns ok=false to cancel the
// assignment without error; errors are reserved for I/O failures.
type Resolver interface {
	// ChooseSubtitle picks a subtitle track index from the analysis, or
	// declines. The analysis always carries at least one subtitle track
	// when this is called.
	ChooseSubtitle(analysis *tracks.Analysis) (index int, ok bool, err error)

	// ChooseAudio picks an extra audio track index from the analysis, or
	// declines. ExtraAudio is non-empty when this is called.
	ChooseAudio(analysis *tracks.Analysis) (index int, ok bool, err error)

	// ConfirmOverwrite reports whether an existing conflicting setting of
	// the given kind may be replaced.
	ConfirmOverwrite(kind reconcile.Kind) (bool, error)
}
