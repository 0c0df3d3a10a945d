package kodidb

import (
	"database/sql"
	"errors"
	"fmt"

	"kodisubs/internal/reconcile"
)

// defaultSettings is the profile template Kodi writes for a fresh settings
// row. Only AudioStream/SubtitleStream/SubtitlesOn matter to the reconciler;
// the rest mirror Kodi's own defaults so a row created here is
// indistinguishable from one Kodi created.
var defaultSettingsColumns = []string{
	"Deinterlace", "DeinterlaceMode", "ViewMode", "ZoomAmount", "PixelRatio",
	"VerticalShift", "AudioStream", "SubtitleStream", "SubtitleDelay",
	"SubtitlesOn", "Brightness", "Contrast", "Gamma", "VolumeAmplification",
	"AudioDelay", "ResumeTime", "Sharpness", "NoiseReduction",
	"NonLinStretch", "PostProcess", "ScalingMethod", "StereoMode",
	"StereoInvert", "VideoStream", "TonemapMethod", "TonemapParam",
	"Orientation", "CenterMixLevel",
}

var defaultSettingsValues = []any{
	1, nil, 0, 1.0, 1.0,
	0.0, reconcile.Unset, reconcile.Unset, 0.0,
	1, 50.0, 50.0, 20.0, 0.0,
	0.0, 0, 0.0, 0.0,
	0, 0, 1, 0,
	0, reconcile.Unset, 1, 1.0,
	0, 0,
}

// txOps implements reconcile.Ops over one open transaction.
type txOps struct {
	tx *sql.Tx
}

func (o txOps) Settings(fileID int64) (reconcile.Settings, bool, error) {
	row := o.tx.QueryRow(
		`SELECT AudioStream, SubtitleStream, SubtitlesOn FROM settings WHERE idFile = ?`, fileID)

	var settings reconcile.Settings
	var subtitlesOn int
	if err := row.Scan(&settings.AudioStream, &settings.SubtitleStream, &subtitlesOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reconcile.Settings{}, false, nil
		}
		return reconcile.Settings{}, false, fmt.Errorf("%w: query settings: %w", ErrUnavailable, err)
	}
	settings.SubtitlesOn = subtitlesOn == 1
	return settings, true, nil
}

func (o txOps) InsertDefaults(fileID int64) error {
	columns := "idFile"
	placeholders := "?"
	values := make([]any, 0, len(defaultSettingsValues)+1)
	values = append(values, fileID)
	for i, column := range defaultSettingsColumns {
		columns += ", " + column
		placeholders += ", ?"
		values = append(values, defaultSettingsValues[i])
	}

	query := "INSERT INTO settings (" + columns + ") VALUES (" + placeholders + ")"
	if _, err := o.tx.Exec(query, values...); err != nil {
		return fmt.Errorf("%w: insert settings row: %w", ErrUnavailable, err)
	}
	return nil
}

func (o txOps) SetAudioStream(fileID int64, index int) error {
	if _, err := o.tx.Exec(
		`UPDATE settings SET AudioStream = ? WHERE idFile = ?`, index, fileID); err != nil {
		return fmt.Errorf("%w: set audio stream: %w", ErrUnavailable, err)
	}
	return nil
}

func (o txOps) SetSubtitleStream(fileID int64, index int) error {
	if _, err := o.tx.Exec(
		`UPDATE settings SET SubtitleStream = ?, SubtitlesOn = 1 WHERE idFile = ?`, index, fileID); err != nil {
		return fmt.Errorf("%w: set subtitle stream: %w", ErrUnavailable, err)
	}
	return nil
}

func (o txOps) EnableSubtitles(fileID int64) error {
	if _, err := o.tx.Exec(
		`UPDATE settings SET SubtitlesOn = 1 WHERE idFile = ?`, fileID); err != nil {
		return fmt.Errorf("%w: enable subtitles: %w", ErrUnavailable, err)
	}
	return nil
}
