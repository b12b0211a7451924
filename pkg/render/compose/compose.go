// Package compose turns per-row series values into plot cells.
//
// Each displayed row is composed independently. A series covers the column
// range its scaled value reaches:
//
//   - Overlay: series s covers [0, round(v_s/max*width)). The first covering
//     series gives the cell its base glyph; every later one adds a
//     [CrossSeries] mark carrying its own glyph and colors.
//   - Stack: series s covers [round(c_{s-1}), round(c_s)) of the cumulative
//     sums c, so the ranges partition the covered prefix and cells carry no
//     marks.
//
// Rounding is half-to-even. When fractional marks are enabled, an overlay
// extent that ends strictly between two columns also gets a [Fractional]
// mark at the column it ends in, appended after any cross-series marks.
//
// Marks are an abstract list; the glyph package decides how they are drawn.
package compose

import (
	"math"

	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/layout"
	"github.com/matzehuels/histoprint/pkg/render/style"
)

// fracEpsilon ignores floating point noise in scaled extents.
const fracEpsilon = 1e-9

// MarkKind distinguishes the two kinds of combining marks.
type MarkKind int

const (
	// CrossSeries marks an additional series covering the cell.
	CrossSeries MarkKind = iota
	// Fractional marks a series extent ending inside the cell.
	Fractional
)

func (k MarkKind) String() string {
	if k == Fractional {
		return "fractional"
	}
	return "cross-series"
}

// Mark is a zero-width glyph layered over a cell's base glyph.
type Mark struct {
	Kind     MarkKind
	Series   int
	Glyph    rune
	Fraction float64 // Fractional only: the part of the cell covered, in (0, 1)
	FG, BG   style.Color
}

// Cell is one character position of the plot area.
type Cell struct {
	Base   rune
	Series int // series owning the base glyph, -1 when uncovered
	FG, BG style.Color
	Marks  []Mark
}

// Blank is the cell used where no series reaches.
var Blank = Cell{Base: ' ', Series: -1}

// Covered reports whether a series owns the cell's base glyph.
func (c Cell) Covered() bool { return c.Series >= 0 }

// Options control composition.
type Options struct {
	Mode render.Mode

	// Combining enables combining marks. Without it overlapping overlay
	// series degrade to the last covering series winning the cell.
	Combining bool

	// Fractional adds marks for extents that end between two columns.
	// It only applies in overlay mode with Combining enabled.
	Fractional bool
}

// Range is a half-open column range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of columns in r.
func (r Range) Len() int { return max(r.End-r.Start, 0) }

// Contains reports whether column c lies in r.
func (r Range) Contains(c int) bool { return c >= r.Start && c < r.End }

// Compose composes one cell row per group of p. Multi-row groups share the
// returned row.
func Compose(p *layout.Plan, pal style.Palette, opts Options) [][]Cell {
	rows := make([][]Cell, len(p.Groups))
	for i, g := range p.Groups {
		rows[i] = Row(g.Values, p.MaxCount, p.PlotWidth, pal, opts)
	}
	return rows
}

// Row composes width cells from the per-series values of one row.
// A zero or negative maxCount yields a blank row.
func Row(values []float64, maxCount float64, width int, pal style.Palette, opts Options) []Cell {
	cells := make([]Cell, width)
	for c := range cells {
		cells[c] = Blank
	}
	if maxCount <= 0 || width <= 0 {
		return cells
	}

	ranges := Extents(values, maxCount, width, opts.Mode)
	if opts.Mode == render.Stack {
		for s, r := range ranges {
			for c := r.Start; c < r.End; c++ {
				cells[c] = Cell{Base: pal.Symbol(s), Series: s, FG: pal.Foreground(s), BG: pal.Background(s)}
			}
		}
		return cells
	}

	for c := range cells {
		cells[c] = overlayCell(c, ranges, pal, opts.Combining)
	}
	if opts.Combining && opts.Fractional {
		addFractionalMarks(cells, values, maxCount, pal)
	}
	return cells
}

// Extents returns the column range covered by each series.
func Extents(values []float64, maxCount float64, width int, mode render.Mode) []Range {
	ranges := make([]Range, len(values))
	if maxCount <= 0 || width <= 0 {
		return ranges
	}
	if mode == render.Stack {
		cum := 0.0
		for s, v := range values {
			start := scale(cum, maxCount, width)
			cum += max(v, 0)
			ranges[s] = Range{Start: start, End: scale(cum, maxCount, width)}
		}
		return ranges
	}
	for s, v := range values {
		ranges[s] = Range{End: scale(v, maxCount, width)}
	}
	return ranges
}

// scale maps v to a column boundary in [0, width].
func scale(v, maxCount float64, width int) int {
	end := int(math.RoundToEven(extent(v, maxCount, width)))
	return min(max(end, 0), width)
}

func extent(v, maxCount float64, width int) float64 {
	e := v / maxCount * float64(width)
	return min(max(e, 0), float64(width))
}

func overlayCell(c int, ranges []Range, pal style.Palette, combining bool) Cell {
	cell := Blank
	for s, r := range ranges {
		if !r.Contains(c) {
			continue
		}
		fg, bg := pal.Foreground(s), pal.Background(s)
		switch {
		case !cell.Covered() || !combining:
			cell = Cell{Base: pal.Symbol(s), Series: s, FG: fg, BG: bg}
		default:
			cell.Marks = append(cell.Marks, Mark{Kind: CrossSeries, Series: s, Glyph: pal.Symbol(s), FG: fg, BG: bg})
			if !bg.IsDefault() {
				cell.BG = bg
			}
		}
	}
	return cell
}

func addFractionalMarks(cells []Cell, values []float64, maxCount float64, pal style.Palette) {
	width := len(cells)
	for s, v := range values {
		e := extent(v, maxCount, width)
		whole := math.Floor(e)
		frac := e - whole
		if frac < fracEpsilon || frac > 1-fracEpsilon {
			continue
		}
		c := int(whole)
		if c >= width {
			continue
		}
		cells[c].Marks = append(cells[c].Marks, Mark{
			Kind:     Fractional,
			Series:   s,
			Glyph:    pal.Symbol(s),
			Fraction: frac,
			FG:       pal.Foreground(s),
			BG:       pal.Background(s),
		})
	}
}

// CrossSeriesCount returns the number of series drawn at c: the base glyph
// owner plus every cross-series mark.
func CrossSeriesCount(c Cell) int {
	if !c.Covered() {
		return 0
	}
	n := 1
	for _, m := range c.Marks {
		if m.Kind == CrossSeries {
			n++
		}
	}
	return n
}
