package decision

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kodisubs/internal/language"
	"kodisubs/internal/reconcile"
	"kodisubs/internal/tracks"
)

// Console resolves questions by prompting a human on the attached terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole returns a resolver reading answers from in and writing prompts
// and track tables to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// ChooseSubtitle lists the subtitle tracks and asks for a pick. Empty input
// accepts the preferred track, but only when the default audio language is
// known; anything that is not a listed track number cancels.
func (c *Console) ChooseSubtitle(analysis *tracks.Analysis) (int, bool, error) {
	fmt.Fprint(c.out, renderSubtitleTable(analysis))

	audioKnown := analysis.DefaultAudio.Language != ""
	if audioKnown && analysis.HasPreferred {
		fmt.Fprint(c.out, "Enter track number to use, 'n' to cancel, enter to accept: ")
	} else {
		fmt.Fprint(c.out, "Enter track number to use, enter to cancel: ")
	}

	input, err := c.readLine()
	if err != nil {
		return 0, false, err
	}
	if input == "" {
		if audioKnown && analysis.HasPreferred {
			return analysis.Preferred.Index, true, nil
		}
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(input)
	if convErr != nil || n < 0 || n >= len(analysis.Subtitles) {
		return 0, false, nil
	}
	return analysis.Subtitles[n].Index, true, nil
}

// ChooseAudio lists the extra audio candidates and asks for a pick. Empty
// input or anything that is not a listed track number cancels.
func (c *Console) ChooseAudio(analysis *tracks.Analysis) (int, bool, error) {
	fmt.Fprint(c.out, renderAudioTable(analysis))
	fmt.Fprint(c.out, "Enter track number to set as audio, enter to skip: ")

	input, err := c.readLine()
	if err != nil {
		return 0, false, err
	}
	if input == "" {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(input)
	if convErr != nil {
		return 0, false, nil
	}
	for _, track := range analysis.ExtraAudio {
		if track.Index == n {
			return n, true, nil
		}
	}
	return 0, false, nil
}

// ConfirmOverwrite asks before replacing an existing conflicting setting.
// Only a literal "y" authorizes the overwrite.
func (c *Console) ConfirmOverwrite(kind reconcile.Kind) (bool, error) {
	fmt.Fprintf(c.out, "A different %s track was set previously. Overwrite (y/n)? ", kind)
	input, err := c.readLine()
	if err != nil {
		return false, err
	}
	return input == "y", nil
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func displayLanguage(code string) string {
	if code == "" {
		return "unknown"
	}
	if name := language.DisplayName(code); name != "" {
		return name
	}
	return code
}
