package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sheikhrachel/living-glass/rules"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiReset = "\x1b[0m"

	clearCmd = "clear"
)

// fadeGlyphs shade a dying cell from freshly dead to nearly gone.
var fadeGlyphs = []string{"▓▓", "▒▒", "░░"}

// TerminalRenderer previews snapshots with ANSI truecolor escapes.
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the snapshot to the terminal
func (r *TerminalRenderer) Display(s Snapshot) {
	var b strings.Builder
	for y := range s.Height() {
		for x := range s.Width() {
			b.WriteString(cellGlyph(s.At(x, y)))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(r.out(), b.String())
}

func cellGlyph(c Cell) string {
	switch {
	case c.Alive:
		return colored(c.ColorIndex, gridPosBlock)
	case c.Dying():
		stage := (c.DeathFrame - 1) * len(fadeGlyphs) / rules.MaxDeathFrames
		return colored(c.ColorIndex, fadeGlyphs[stage])
	default:
		return gridPosEmpty
	}
}

func colored(colorIndex int, glyph string) string {
	c := palette[colorIndex]
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, glyph, ansiReset)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
