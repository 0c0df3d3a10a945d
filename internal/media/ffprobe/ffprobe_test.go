package ffprobe_test

import (
	"context"
	"testing"

	"kodisubs/internal/media/ffprobe"
)

const sampleOutput = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "dts", "codec_type": "audio", "channels": 6,
     "tags": {"language": "fra", "title": "French DTS"},
     "disposition": {"default": 1, "forced": 0}},
    {"index": 2, "codec_name": "ac3", "codec_type": "audio", "channels": 2,
     "tags": {"language": "eng", "title": "Director Commentary"},
     "disposition": {"default": 0, "forced": 0}},
    {"index": 3, "codec_name": "subrip", "codec_type": "subtitle",
     "tags": {"language": "eng"},
     "disposition": {"default": 0, "forced": 1}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 4, "format_name": "matroska,webm"}
}`

func TestDecode(t *testing.T) {
	result, err := ffprobe.Decode([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	audio := result.AudioStreams()
	if len(audio) != 2 {
		t.Fatalf("expected 2 audio streams, got %d", len(audio))
	}
	if !audio[0].IsDefault() {
		t.Error("first audio stream should be default")
	}
	if audio[0].Tags["language"] != "fra" {
		t.Errorf("unexpected language: %q", audio[0].Tags["language"])
	}
	if audio[1].Title() != "Director Commentary" {
		t.Errorf("unexpected title: %q", audio[1].Title())
	}

	subs := result.SubtitleStreams()
	if len(subs) != 1 {
		t.Fatalf("expected 1 subtitle stream, got %d", len(subs))
	}
	if !subs[0].IsForced() {
		t.Error("subtitle stream should be forced")
	}
	if subs[0].IsDefault() {
		t.Error("subtitle stream should not be default")
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := ffprobe.Decode([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := ffprobe.Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
