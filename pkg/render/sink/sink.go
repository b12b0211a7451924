// Package sink writes assembled plot lines to an output.
//
// # Overview
//
// A sink receives the lines built by [grid.Assemble] and emits them in a
// final form:
//
//   - [ANSI]: colored terminal output through a lipgloss renderer
//   - [Plain]: text only, spans ignored
//   - [JSON]: lines and spans as JSON for external tools
//
// Terminal capability negotiation happens here. The ANSI sink degrades to
// plain text when its color profile is termenv.Ascii, so callers can pick a
// profile once (usually from the output's tty state) and use the same sink
// everywhere.
//
// # Adding New Sinks
//
// Implement [Sink]. Lines carry rune offsets in their spans; use
// [grid.Line.Segments] to walk a line as uniformly colored runs.
package sink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/histoprint/pkg/render/grid"
)

// Sink writes rendered lines.
type Sink interface {
	Write(lines []grid.Line) error
}

// Plain writes line text without styling.
type Plain struct {
	w io.Writer
}

// NewPlain returns a sink writing plain text to w.
func NewPlain(w io.Writer) *Plain { return &Plain{w: w} }

func (p *Plain) Write(lines []grid.Line) error {
	bw := bufio.NewWriter(p.w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}
