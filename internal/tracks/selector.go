package tracks

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrNoAudioTracks signals a file whose container reported zero audio
// streams; such a file cannot be processed.
var ErrNoAudioTracks = errors.New("no audio tracks")

// DefaultAudio returns the track Kodi will play by default: the first track
// flagged default in container order, or the first track overall. More than
// one default flag is reported and resolved first-in-order.
func DefaultAudio(audio []AudioTrack, logger *slog.Logger) (AudioTrack, error) {
	if len(audio) == 0 {
		return AudioTrack{}, ErrNoAudioTracks
	}
	var flagged []AudioTrack
	for _, track := range audio {
		if track.Default {
			flagged = append(flagged, track)
		}
	}
	if len(flagged) > 0 {
		if len(flagged) > 1 {
			warn(logger, "more than one audio track flagged default", slog.Int("count", len(flagged)))
		}
		return flagged[0], nil
	}
	return audio[0], nil
}

// ExtraAudioCandidates returns every audio track other than the default that
// does not look like a commentary. The title check is a heuristic: tracks
// that omit the word "commentary" still surface as candidates.
func ExtraAudioCandidates(audio []AudioTrack, def AudioTrack) []AudioTrack {
	extras := make([]AudioTrack, 0, len(audio))
	for _, track := range audio {
		if track.Index == def.Index {
			continue
		}
		if strings.Contains(strings.ToLower(track.Title), "commentary") {
			continue
		}
		extras = append(extras, track)
	}
	return extras
}

// PreferredSubtitle picks the best subtitle for the target language (an ISO
// 639-1 code): forced beats default beats first-listed, within the pool of
// language matches. When several candidates exist, SDH variants are dropped
// unless doing so would empty the pool. Reports false when no track matches
// the language.
func PreferredSubtitle(subs []SubtitleTrack, lang2 string, logger *slog.Logger) (SubtitleTrack, bool) {
	var pool []SubtitleTrack
	for _, track := range subs {
		if track.Language == lang2 {
			pool = append(pool, track)
		}
	}
	if len(pool) == 0 {
		return SubtitleTrack{}, false
	}

	if len(pool) > 1 {
		clean := make([]SubtitleTrack, 0, len(pool))
		for _, track := range pool {
			if !strings.Contains(track.Title, "SDH") {
				clean = append(clean, track)
			}
		}
		if len(clean) > 0 {
			pool = clean
		}
	}

	var forced []SubtitleTrack
	for _, track := range pool {
		if track.Forced {
			forced = append(forced, track)
		}
	}
	if len(forced) > 0 {
		if len(forced) > 1 {
			warn(logger, "more than one subtitle track flagged forced", slog.Int("count", len(forced)))
		}
		return forced[0], true
	}

	var flagged []SubtitleTrack
	for _, track := range pool {
		if track.Default {
			flagged = append(flagged, track)
		}
	}
	if len(flagged) > 0 {
		if len(flagged) > 1 {
			warn(logger, "more than one subtitle track flagged default", slog.Int("count", len(flagged)))
		}
		return flagged[0], true
	}

	return pool[0], true
}

// SynthesizeExternal builds the pseudo-track for a detected sidecar file.
// Its index is the count of embedded subtitle tracks: Kodi numbers external
// subtitles after the container's own subtitle streams, so the entry slots
// in at the end of the subtitle list.
func SynthesizeExternal(embeddedSubtitles int, lang2 string) SubtitleTrack {
	return SubtitleTrack{
		Index:    embeddedSubtitles,
		Language: lang2,
		Title:    "EXTERNAL",
		Codec:    "srt",
		External: true,
	}
}

// Analyze derives the per-file track facts in one pass. A detected sidecar
// is appended to the subtitle list and becomes the preferred subtitle
// unconditionally: an external file named after the movie is assumed to be
// the subtitle the user wants.
func Analyze(audio []AudioTrack, subs []SubtitleTrack, lang2 string, hasSidecar bool, logger *slog.Logger) (*Analysis, error) {
	def, err := DefaultAudio(audio, logger)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Audio:        audio,
		Subtitles:    subs,
		DefaultAudio: def,
		ExtraAudio:   ExtraAudioCandidates(audio, def),
	}
	analysis.Preferred, analysis.HasPreferred = PreferredSubtitle(subs, lang2, logger)

	if hasSidecar {
		external := SynthesizeExternal(len(subs), lang2)
		analysis.Subtitles = append(append([]SubtitleTrack{}, subs...), external)
		analysis.Preferred = external
		analysis.HasPreferred = true
		analysis.HasExternal = true
	}
	return analysis, nil
}

func warn(logger *slog.Logger, msg string, attrs ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, attrs...)
}
