package decision

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"kodisubs/internal/tracks"
)

func renderSubtitleTable(analysis *tracks.Analysis) string {
	rows := make([][]string, 0, len(analysis.Subtitles))
	for _, track := range analysis.Subtitles {
		marker := ""
		if analysis.HasPreferred && track.Index == analysis.Preferred.Index {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(track.Index),
			displayLanguage(track.Language),
			track.Title,
			track.Codec,
			flagString(track.Forced),
			flagString(track.Default),
		})
	}
	return renderTracks([]string{"", "#", "Language", "Title", "Codec", "Forced", "Default"}, rows)
}

func renderAudioTable(analysis *tracks.Analysis) string {
	rows := make([][]string, 0, len(analysis.ExtraAudio))
	for _, track := range analysis.ExtraAudio {
		rows = append(rows, []string{
			strconv.Itoa(track.Index),
			displayLanguage(track.Language),
			track.Title,
		})
	}
	return renderTracks([]string{"#", "Language", "Title"}, rows)
}

func renderTracks(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i, h := range headers {
		align := text.AlignLeft
		if h == "#" {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}

func flagString(set bool) string {
	if set {
		return "yes"
	}
	return ""
}
