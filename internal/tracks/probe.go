package tracks

import (
	"kodisubs/internal/language"
	"kodisubs/internal/media/ffprobe"
)

// FromProbe converts an ffprobe result into track descriptors. Indexes are
// positions within each track kind, not ffprobe's global stream index; the
// per-kind position is what Kodi stores in AudioStream/SubtitleStream.
// Languages normalize to ISO 639-1 where the tag is recognizable.
func FromProbe(result ffprobe.Result) ([]AudioTrack, []SubtitleTrack) {
	audioStreams := result.AudioStreams()
	audio := make([]AudioTrack, 0, len(audioStreams))
	for i, stream := range audioStreams {
		audio = append(audio, AudioTrack{
			Index:    i,
			Language: language.ToISO2(language.ExtractFromTags(stream.Tags)),
			Title:    stream.Title(),
			Default:  stream.IsDefault(),
		})
	}

	subtitleStreams := result.SubtitleStreams()
	subs := make([]SubtitleTrack, 0, len(subtitleStreams))
	for i, stream := range subtitleStreams {
		subs = append(subs, SubtitleTrack{
			Index:    i,
			Language: language.ToISO2(language.ExtractFromTags(stream.Tags)),
			Title:    stream.Title(),
			Forced:   stream.IsForced(),
			Default:  stream.IsDefault(),
			Codec:    stream.CodecName,
		})
	}
	return audio, subs
}
