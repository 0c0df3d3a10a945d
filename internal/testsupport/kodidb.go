package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"kodisubs/internal/kodidb"
)

// kodiSchema is the subset of the MyVideos schema the store touches.
const kodiSchema = `
CREATE TABLE movie (
    idMovie INTEGER PRIMARY KEY,
    idFile INTEGER,
    c22 TEXT
);
CREATE TABLE settings (
    idFile INTEGER PRIMARY KEY,
    Deinterlace INTEGER, DeinterlaceMode TEXT, ViewMode INTEGER,
    ZoomAmount REAL, PixelRatio REAL,
    VerticalShift REAL, AudioStream INTEGER, SubtitleStream INTEGER,
    SubtitleDelay REAL, SubtitlesOn INTEGER, Brightness REAL, Contrast REAL,
    Gamma REAL, VolumeAmplification REAL, AudioDelay REAL, ResumeTime INTEGER,
    Sharpness REAL, NoiseReduction REAL, NonLinStretch INTEGER,
    PostProcess INTEGER, ScalingMethod INTEGER, StereoMode INTEGER,
    StereoInvert INTEGER, VideoStream INTEGER, TonemapMethod INTEGER,
    TonemapParam REAL, Orientation INTEGER, CenterMixLevel INTEGER
);
CREATE TABLE streamdetails (
    idFile INTEGER,
    iStreamType INTEGER,
    strAudioLanguage TEXT
);
`

// CreateKodiDB creates a disposable Kodi database at path with the schema
// subset kodisubs touches.
func CreateKodiDB(t testing.TB, path string) {
	t.Helper()

	db := open(t, path)
	defer db.Close()
	if _, err := db.Exec(kodiSchema); err != nil {
		t.Fatalf("create kodi schema: %v", err)
	}
}

// MustOpenStore opens a kodidb.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *kodidb.Store {
	t.Helper()

	store, err := kodidb.Open(path)
	if err != nil {
		t.Fatalf("kodidb.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedMovie inserts a movie row pointing at fileID with the given c22 path.
func SeedMovie(t testing.TB, path string, fileID int64, c22 string) {
	t.Helper()

	db := open(t, path)
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO movie (idFile, c22) VALUES (?, ?)`, fileID, c22); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
}

// SeedAudioStream appends an audio entry to streamdetails for fileID.
func SeedAudioStream(t testing.TB, path string, fileID int64, lang string) {
	t.Helper()

	db := open(t, path)
	defer db.Close()
	if _, err := db.Exec(
		`INSERT INTO streamdetails (idFile, iStreamType, strAudioLanguage) VALUES (?, 1, ?)`,
		fileID, lang); err != nil {
		t.Fatalf("seed audio stream: %v", err)
	}
}

// SettingsRow holds the settings fields tests inspect.
type SettingsRow struct {
	AudioStream    int
	SubtitleStream int
	SubtitlesOn    bool
	Exists         bool
}

// ReadSettings fetches the settings row for fileID directly.
func ReadSettings(t testing.TB, path string, fileID int64) SettingsRow {
	t.Helper()

	db := open(t, path)
	defer db.Close()

	var row SettingsRow
	var subtitlesOn int
	err := db.QueryRow(
		`SELECT AudioStream, SubtitleStream, SubtitlesOn FROM settings WHERE idFile = ?`, fileID).
		Scan(&row.AudioStream, &row.SubtitleStream, &subtitlesOn)
	if err == sql.ErrNoRows {
		return row
	}
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	row.SubtitlesOn = subtitlesOn == 1
	row.Exists = true
	return row
}

// ReadDeinterlace fetches the deinterlace pair of the settings row for
// fileID.
func ReadDeinterlace(t testing.TB, path string, fileID int64) (int, sql.NullString) {
	t.Helper()

	db := open(t, path)
	defer db.Close()

	var deinterlace int
	var mode sql.NullString
	err := db.QueryRow(
		`SELECT Deinterlace, DeinterlaceMode FROM settings WHERE idFile = ?`, fileID).
		Scan(&deinterlace, &mode)
	if err != nil {
		t.Fatalf("read deinterlace: %v", err)
	}
	return deinterlace, mode
}

func open(t testing.TB, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	return db
}
