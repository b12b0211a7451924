// Package grid assembles the final lines of a plot.
//
// Every [Line] is plain text plus styling spans keyed by rune offset, so a
// sink can color the output without the renderer knowing about terminals.
// Lines are emitted in a fixed order:
//
//  1. title, centered (if set)
//  2. scale line: the peak count right-aligned at the plot edge (if enabled)
//  3. one line per displayed row; the first row of a group carries its
//     lower-edge label and a tick
//  4. the final upper edge
//  5. legend (if any series is labeled or the summary is on)
//  6. summary rows (if enabled)
//
// [LineCount] predicts the number of lines from the options alone.
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/compose"
	"github.com/matzehuels/histoprint/pkg/render/glyph"
	"github.com/matzehuels/histoprint/pkg/render/layout"
	"github.com/matzehuels/histoprint/pkg/render/style"
	"github.com/matzehuels/histoprint/pkg/render/summary"
)

// ScaleTick marks the column the peak count maps to.
const ScaleTick = "╷"

// Span styles runes [Start, End) of a line's text.
type Span struct {
	Start, End int
	FG, BG     style.Color
}

// Line is one output line.
type Line struct {
	Text  string
	Spans []Span
}

// Width returns the display width of the line.
func (l Line) Width() int { return runewidth.StringWidth(l.Text) }

// Segments splits the text at span boundaries. Each segment is returned
// with the colors that apply to it (default outside spans).
func (l Line) Segments() []Segment {
	runes := []rune(l.Text)
	var out []Segment
	pos := 0
	for _, sp := range l.Spans {
		if sp.Start > pos {
			out = append(out, Segment{Text: string(runes[pos:sp.Start])})
		}
		out = append(out, Segment{Text: string(runes[sp.Start:sp.End]), FG: sp.FG, BG: sp.BG})
		pos = sp.End
	}
	if pos < len(runes) {
		out = append(out, Segment{Text: string(runes[pos:])})
	}
	return out
}

// Segment is a run of text with uniform colors.
type Segment struct {
	Text   string
	FG, BG style.Color
}

// Options select the optional parts of the output.
type Options struct {
	Mode      render.Mode
	Title     string
	ScaleLine bool
	Legend    bool // forced on by Summary
	Summary   bool
}

// Reserved returns the number of lines that are not plot rows.
func Reserved(o Options) int {
	n := 1 // trailing upper edge
	if o.Title != "" {
		n++
	}
	if o.ScaleLine {
		n++
	}
	if o.Legend || o.Summary {
		n++
	}
	if o.Summary {
		n += summary.RowCount(o.Mode)
	}
	return n
}

// LineCount returns the exact number of lines Assemble emits for rows
// displayed plot rows.
func LineCount(o Options, rows int) int {
	return Reserved(o) + rows
}

// Input is everything Assemble needs.
type Input struct {
	Options
	Plan     *layout.Plan
	Cells    [][]compose.Cell // one row per plan group
	Stats    []summary.Stats  // used when Summary is set
	Entries  []summary.Entry
	Encoding glyph.Encoding
}

// Assemble builds the output lines.
func Assemble(in Input) []Line {
	p := in.Plan
	enc := in.Encoding
	if enc == nil {
		enc = glyph.Unicode
	}
	lines := make([]Line, 0, LineCount(in.Options, p.Rows()))

	if in.Title != "" {
		lines = append(lines, Line{Text: center(in.Title, p.Columns)})
	}
	if in.ScaleLine {
		lines = append(lines, Line{Text: p.BlankPrefix() + scaleLabel(p)})
	}

	for i, g := range p.Groups {
		for r := 0; r < g.Rows; r++ {
			var b builder
			if r == 0 {
				b.plain(p.TickPrefix(g.Label))
			} else {
				b.plain(p.BlankPrefix())
			}
			for _, cell := range in.Cells[i] {
				b.glyphs(enc.Encode(cell))
			}
			lines = append(lines, b.line())
		}
	}
	lines = append(lines, Line{Text: p.TickPrefix(p.UpperLabel)})

	if !in.Legend && !in.Summary {
		return lines
	}
	var stats []summary.Stats
	if in.Summary {
		stats = in.Stats
		if stats == nil {
			stats = []summary.Stats{}
		}
	}
	block := summary.Format(stats, in.Entries, p.Columns, in.Mode)
	lines = append(lines, legendLine(block, enc))
	for _, row := range block.Rows {
		lines = append(lines, Line{Text: row})
	}
	return lines
}

func legendLine(block summary.Block, enc glyph.Encoding) Line {
	var b builder
	b.plain(strings.Repeat(" ", block.Indent+summary.Prefix))
	for i, e := range block.Entries {
		b.plain(" ")
		b.glyphs(enc.Encode(compose.Cell{Base: e.Symbol, Series: i, FG: e.FG, BG: e.BG}))
		b.plain(" " + e.Label)
	}
	return b.trimmed()
}

// scaleLabel right-aligns the peak count so the tick sits on the last
// plot column.
func scaleLabel(p *layout.Plan) string {
	label := formatCount(p.PeakCount)
	pad := p.PlotWidth - runewidth.StringWidth(label) - runewidth.StringWidth(ScaleTick)
	return strings.Repeat(" ", max(pad, 0)) + label + ScaleTick
}

func formatCount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("% .2e", v)
}

func center(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	return strings.Repeat(" ", max(pad, 0)) + s
}

// builder accumulates text and merges adjacent spans with equal colors.
type builder struct {
	sb    strings.Builder
	pos   int
	spans []Span
}

func (b *builder) plain(s string) {
	b.sb.WriteString(s)
	b.pos += len([]rune(s))
}

func (b *builder) glyphs(gs []glyph.Glyph) {
	for _, g := range gs {
		b.sb.WriteRune(g.R)
		if !g.FG.IsDefault() || !g.BG.IsDefault() {
			b.span(b.pos, b.pos+1, g.FG, g.BG)
		}
		b.pos++
	}
}

func (b *builder) span(start, end int, fg, bg style.Color) {
	if n := len(b.spans); n > 0 {
		last := &b.spans[n-1]
		if last.End == start && last.FG == fg && last.BG == bg {
			last.End = end
			return
		}
	}
	b.spans = append(b.spans, Span{Start: start, End: end, FG: fg, BG: bg})
}

func (b *builder) line() Line {
	return Line{Text: b.sb.String(), Spans: b.spans}
}

// trimmed drops trailing unstyled spaces.
func (b *builder) trimmed() Line {
	runes := []rune(b.sb.String())
	keep := 0
	if n := len(b.spans); n > 0 {
		keep = b.spans[n-1].End
	}
	end := len(runes)
	for end > keep && runes[end-1] == ' ' {
		end--
	}
	return Line{Text: string(runes[:end]), Spans: b.spans}
}
