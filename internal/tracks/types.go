package tracks

// AudioTrack describes one audio stream of a media container. Index is the
// track's position among the audio streams, which is the value Kodi persists
// in its settings table.
type AudioTrack struct {
	Index    int
	Language string
	Title    string
	Default  bool
}

// SubtitleTrack describes one subtitle stream. External marks a synthesized
// entry standing in for a sidecar file rather than an embedded stream.
type SubtitleTrack struct {
	Index    int
	Language string
	Title    string
	Forced   bool
	Default  bool
	Codec    string
	External bool
}

// Analysis aggregates the derived track facts for one file. It is built once
// per file and not mutated afterwards; a different target language requires
// a fresh Analyze call.
type Analysis struct {
	Audio        []AudioTrack
	Subtitles    []SubtitleTrack
	DefaultAudio AudioTrack
	ExtraAudio   []AudioTrack
	Preferred    SubtitleTrack
	HasPreferred bool
	HasExternal  bool
}
