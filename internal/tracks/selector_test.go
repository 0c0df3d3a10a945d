package tracks_test

import (
	"errors"
	"testing"

	"kodisubs/internal/tracks"
)

func TestDefaultAudioPrefersFlagged(t *testing.T) {
	audio := []tracks.AudioTrack{
		{Index: 0, Language: "fr"},
		{Index: 1, Language: "en", Default: true},
		{Index: 2, Language: "de"},
	}
	def, err := tracks.DefaultAudio(audio, nil)
	if err != nil {
		t.Fatalf("DefaultAudio failed: %v", err)
	}
	if def.Index != 1 {
		t.Errorf("expected flagged track 1, got %d", def.Index)
	}
}

func TestDefaultAudioFallsBackToFirst(t *testing.T) {
	audio := []tracks.AudioTrack{
		{Index: 0, Language: "fr"},
		{Index: 1, Language: "en"},
	}
	def, err := tracks.DefaultAudio(audio, nil)
	if err != nil {
		t.Fatalf("DefaultAudio failed: %v", err)
	}
	if def.Index != 0 {
		t.Errorf("expected first track, got %d", def.Index)
	}
}

func TestDefaultAudioMultipleFlagsFirstWins(t *testing.T) {
	audio := []tracks.AudioTrack{
		{Index: 0},
		{Index: 1, Default: true},
		{Index: 2, Default: true},
	}
	def, err := tracks.DefaultAudio(audio, nil)
	if err != nil {
		t.Fatalf("DefaultAudio failed: %v", err)
	}
	if def.Index != 1 {
		t.Errorf("expected first flagged track, got %d", def.Index)
	}
}

func TestDefaultAudioEmpty(t *testing.T) {
	if _, err := tracks.DefaultAudio(nil, nil); !errors.Is(err, tracks.ErrNoAudioTracks) {
		t.Fatalf("expected ErrNoAudioTracks, got %v", err)
	}
}

func TestExtraAudioCandidatesSkipsCommentary(t *testing.T) {
	audio := []tracks.AudioTrack{
		{Index: 0, Default: true},
		{Index: 1, Title: "Director Commentary"},
		{Index: 2, Title: "Original Mono"},
		{Index: 3, Title: "COMMENTARY with cast"},
		{Index: 4},
	}
	def := audio[0]
	extras := tracks.ExtraAudioCandidates(audio, def)
	if len(extras) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(extras), extras)
	}
	if extras[0].Index != 2 || extras[1].Index != 4 {
		t.Errorf("unexpected candidates: %+v", extras)
	}
}

func TestPreferredSubtitleNoLanguageMatch(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "fr"},
		{Index: 1, Language: "de"},
	}
	if _, ok := tracks.PreferredSubtitle(subs, "en", nil); ok {
		t.Fatal("expected no preferred subtitle")
	}
}

func TestPreferredSubtitleSDHNarrowing(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "en", Title: "English SDH"},
		{Index: 1, Language: "en", Title: "English"},
	}
	preferred, ok := tracks.PreferredSubtitle(subs, "en", nil)
	if !ok {
		t.Fatal("expected a preferred subtitle")
	}
	if preferred.Index != 1 {
		t.Errorf("expected SDH track dropped, got index %d", preferred.Index)
	}
}

func TestPreferredSubtitleSDHNarrowingSkippedWhenAllSDH(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "en", Title: "English SDH"},
	}
	preferred, ok := tracks.PreferredSubtitle(subs, "en", nil)
	if !ok || preferred.Index != 0 {
		t.Fatalf("expected the lone SDH track, got %+v ok=%v", preferred, ok)
	}
}

func TestPreferredSubtitleForcedBeatsDefault(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "en", Default: true},
		{Index: 1, Language: "en", Forced: true},
	}
	preferred, ok := tracks.PreferredSubtitle(subs, "en", nil)
	if !ok {
		t.Fatal("expected a preferred subtitle")
	}
	if preferred.Index != 1 {
		t.Errorf("forced track should win, got index %d", preferred.Index)
	}
}

func TestPreferredSubtitleDefaultBeatsFirst(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "en"},
		{Index: 1, Language: "en", Default: true},
	}
	preferred, _ := tracks.PreferredSubtitle(subs, "en", nil)
	if preferred.Index != 1 {
		t.Errorf("default track should win, got index %d", preferred.Index)
	}
}

func TestPreferredSubtitleFirstListedFallback(t *testing.T) {
	subs := []tracks.SubtitleTrack{
		{Index: 3, Language: "en"},
		{Index: 4, Language: "en"},
	}
	preferred, _ := tracks.PreferredSubtitle(subs, "en", nil)
	if preferred.Index != 3 {
		t.Errorf("first listed track should win, got index %d", preferred.Index)
	}
}

func TestSynthesizeExternalNumbering(t *testing.T) {
	// External entries are numbered after the embedded subtitle streams.
	external := tracks.SynthesizeExternal(3, "en")
	if external.Index != 3 {
		t.Errorf("expected index 3, got %d", external.Index)
	}
	if !external.External || external.Codec != "srt" || external.Language != "en" {
		t.Errorf("unexpected synthetic track: %+v", external)
	}
	if external.Forced || external.Default {
		t.Error("synthetic track must not carry forced or default flags")
	}
}

func TestAnalyzeSidecarOverridesPreferred(t *testing.T) {
	audio := []tracks.AudioTrack{{Index: 0, Language: "fr", Default: true}}
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "de"},
	}
	analysis, err := tracks.Analyze(audio, subs, "en", true, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !analysis.HasExternal {
		t.Fatal("expected external sidecar recorded")
	}
	if !analysis.HasPreferred || !analysis.Preferred.External {
		t.Fatalf("sidecar should become preferred, got %+v", analysis.Preferred)
	}
	if analysis.Preferred.Index != 1 {
		t.Errorf("expected sidecar index 1, got %d", analysis.Preferred.Index)
	}
	if len(analysis.Subtitles) != 2 {
		t.Errorf("expected sidecar appended to subtitle list, got %d entries", len(analysis.Subtitles))
	}
	if len(subs) != 1 {
		t.Error("input slice must not be mutated")
	}
}

func TestAnalyzeEndToEndSelection(t *testing.T) {
	audio := []tracks.AudioTrack{{Index: 0, Language: "fr", Default: true}}
	subs := []tracks.SubtitleTrack{
		{Index: 0, Language: "en", Forced: true},
		{Index: 1, Language: "en", Default: true},
	}
	analysis, err := tracks.Analyze(audio, subs, "en", false, nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if analysis.DefaultAudio.Language != "fr" {
		t.Errorf("unexpected default audio: %+v", analysis.DefaultAudio)
	}
	if !analysis.HasPreferred || analysis.Preferred.Index != 0 {
		t.Fatalf("forced subtitle should be preferred, got %+v", analysis.Preferred)
	}
	if len(analysis.ExtraAudio) != 0 {
		t.Errorf("no extra audio expected, got %+v", analysis.ExtraAudio)
	}
}
