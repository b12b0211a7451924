package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/matzehuels/histoprint/pkg/render/layout"
)

// Terminal describes the output device.
type Terminal interface {
	// Size returns the terminal dimensions in cells.
	Size() (columns, rows int, err error)

	// IsTerminal reports whether output goes to an interactive terminal.
	IsTerminal() bool
}

// fileTerminal queries a file descriptor, usually stdout.
type fileTerminal struct {
	f *os.File
}

func (t fileTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.f.Fd()))
}

func (t fileTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.f.Fd()))
}

// sizeFunc adapts a Terminal to the layout planner.
func sizeFunc(t Terminal) layout.SizeFunc {
	if t == nil {
		return nil
	}
	return t.Size
}

// colorProfile picks the ANSI sink profile. Color is dropped when disabled
// or when output is not a terminal; otherwise the environment decides
// (COLORTERM, NO_COLOR and friends).
func colorProfile(t Terminal, noColor bool) termenv.Profile {
	if noColor || t == nil || !t.IsTerminal() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
