// Package layout computes the terminal geometry of a histogram plot.
//
// # Overview
//
// [New] takes a validated histogram set and a [Config] and produces an
// immutable [Plan]:
//
//   - the total width and height, explicit or detected via a [SizeFunc]
//   - a label column wide enough for every displayed edge, all labels at
//     identical width
//   - the plot width left for bars
//   - the displayed row groups: adjacent bins are merged when there are more
//     bins than rows, and wide bins span several rows when there is room
//   - the per-row value of every series in every group, and MaxCount, the
//     value that maps to the full plot width
//
// A plan with MaxCount == 0 is valid: every row renders blank.
package layout

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/render"
)

// Axis decoration around edge labels.
const (
	TickMark   = "_"
	NoTickMark = " "

	// labelGap separates the edge label from the tick mark.
	labelGap = " "
)

// Fallback terminal size when detection is unavailable.
const (
	FallbackColumns = 80
	FallbackRows    = 24
)

// SizeFunc reports the terminal size in character cells.
type SizeFunc func() (columns, rows int, err error)

// Config holds the inputs of the layout planner.
type Config struct {
	// Columns and Lines are the total output size. Zero means auto-detect.
	Columns int
	Lines   int

	// Size detects the terminal size when Columns or Lines is zero.
	Size SizeFunc

	Notation  render.Notation
	Precision int // negative selects automatically

	Mode render.Mode

	// ScaleBinWidth gives wide bins proportionally more rows.
	ScaleBinWidth bool

	// CountArea divides a group's value by its row count, so the bar area
	// rather than its length represents the count.
	CountArea bool

	// ReservedLines is the number of output lines that are not plot rows
	// (title, scale line, trailing edge, legend, summary).
	ReservedLines int
}

// Group is one displayed row group: one bin or several merged bins.
type Group struct {
	First, Last int // inclusive bin index range
	Lower       float64
	Upper       float64
	Label       string // formatted Lower
	Rows        int

	// Totals holds the summed count per series; Values the per-row value
	// used for scaling (Totals divided by Rows when CountArea is set).
	Totals []float64
	Values []float64
}

// Plan is the computed geometry of a plot.
type Plan struct {
	Columns int
	Lines   int

	LabelWidth int
	AxisWidth  int
	PlotWidth  int

	Notation  render.Notation
	Precision int

	Mode   render.Mode
	Groups []Group

	// RowsAvailable is Lines minus the reserved lines, at least one.
	RowsAvailable int

	// UpperLabel is the formatted final upper edge.
	UpperLabel string

	// MaxCount is the per-row value mapped to the full plot width;
	// PeakCount is the unscaled total of the group that reaches it.
	MaxCount  float64
	PeakCount float64
}

// Rows returns the number of displayed plot rows.
func (p *Plan) Rows() int {
	n := 0
	for _, g := range p.Groups {
		n += g.Rows
	}
	return n
}

// TickPrefix returns the axis block for a row that carries label.
func (p *Plan) TickPrefix(label string) string {
	return label + labelGap + TickMark
}

// BlankPrefix returns the axis block for a row without a label.
func (p *Plan) BlankPrefix() string {
	return strings.Repeat(" ", p.LabelWidth) + labelGap + NoTickMark
}

// New computes the plan for v.
//
// It fails with a CONFIGURATION error when the width or height is negative,
// resolves to a non-positive value, or leaves no room for the plot after the
// label column.
func New(v *hist.Validated, cfg Config) (*Plan, error) {
	columns, lines, err := resolveSize(cfg)
	if err != nil {
		return nil, err
	}

	rows := max(lines-cfg.ReservedLines, 1)
	groups := mergeBins(v, rows)
	if cfg.ScaleBinWidth {
		expandRows(groups, v, rows)
	}

	// Format only the edges that are displayed.
	edges := make([]float64, 0, len(groups)+1)
	for _, g := range groups {
		edges = append(edges, g.Lower)
	}
	edges = append(edges, v.Edge(v.NumBins()))
	labels, notation, precision := FormatEdges(edges, cfg.Notation, cfg.Precision)
	for i := range groups {
		groups[i].Label = labels[i]
	}

	labelWidth := 0
	if len(labels) > 0 {
		labelWidth = runewidth.StringWidth(labels[0])
	}
	axisWidth := labelWidth + len(labelGap) + len(TickMark)
	plotWidth := columns - axisWidth
	if plotWidth <= 0 {
		return nil, errors.Configuration("width %d leaves no room for the plot (axis labels need %d columns)",
			columns, axisWidth)
	}

	p := &Plan{
		Columns:    columns,
		Lines:      lines,
		LabelWidth: labelWidth,
		AxisWidth:  axisWidth,
		PlotWidth:  plotWidth,
		Notation:   notation,
		Precision:  precision,
		Mode:       cfg.Mode,
		Groups:     groups,
		UpperLabel: labels[len(labels)-1],

		RowsAvailable: rows,
	}
	p.fillValues(v, cfg.CountArea)
	return p, nil
}

// resolveSize applies explicit sizes and auto-detection.
// Auto height keeps a constant aspect ratio: columns/3.5 + 1, bounded by
// the terminal height.
func resolveSize(cfg Config) (columns, lines int, err error) {
	if cfg.Columns < 0 || cfg.Lines < 0 {
		return 0, 0, errors.Configuration("width and height must not be negative (got %dx%d)", cfg.Columns, cfg.Lines)
	}

	termColumns, termRows := FallbackColumns, FallbackRows
	if (cfg.Columns == 0 || cfg.Lines == 0) && cfg.Size != nil {
		if c, r, err := cfg.Size(); err == nil && c > 0 && r > 0 {
			termColumns, termRows = c, r
		}
	}

	columns = cfg.Columns
	if columns == 0 {
		columns = termColumns - 1
	}
	lines = cfg.Lines
	if lines == 0 {
		lines = min(int(float64(columns)/3.5)+1, termRows-1)
	}
	if columns <= 0 || lines <= 0 {
		return 0, 0, errors.Configuration("width and height must be positive (resolved to %dx%d)", columns, lines)
	}
	return columns, lines, nil
}

// mergeBins groups adjacent bins so that at most rows groups remain.
func mergeBins(v *hist.Validated, rows int) []Group {
	nbins := v.NumBins()
	per := 1
	if nbins > rows {
		per = (nbins + rows - 1) / rows
	}
	groups := make([]Group, 0, (nbins+per-1)/per)
	for first := 0; first < nbins; first += per {
		last := min(first+per, nbins) - 1
		groups = append(groups, Group{
			First: first,
			Last:  last,
			Lower: v.Edge(first),
			Upper: v.Edge(last + 1),
			Rows:  1,
		})
	}
	return groups
}

// expandRows gives each group a row count proportional to its width.
// Groups never drop below one row. When rounding overshoots, the group with
// the most rows (first on ties) gives one back until the total fits.
func expandRows(groups []Group, v *hist.Validated, rows int) {
	if len(groups) >= rows {
		return
	}
	span := v.Edge(v.NumBins()) - v.Edge(0)
	// Slightly shrink the row scale so bins of exactly span/rows get one
	// full row despite floating point error.
	rowScale := span / float64(rows) * 0.999

	total := 0
	for i := range groups {
		n := int(math.Floor((groups[i].Upper - groups[i].Lower) / rowScale))
		groups[i].Rows = max(n, 1)
		total += groups[i].Rows
	}
	for total > rows {
		widest := 0
		for i := range groups {
			if groups[i].Rows > groups[widest].Rows {
				widest = i
			}
		}
		if groups[widest].Rows == 1 {
			return
		}
		groups[widest].Rows--
		total--
	}
}

// fillValues sums counts per group and derives MaxCount.
func (p *Plan) fillValues(v *hist.Validated, countArea bool) {
	nseries := v.NumSeries()
	for i := range p.Groups {
		g := &p.Groups[i]
		g.Totals = make([]float64, nseries)
		g.Values = make([]float64, nseries)
		for s := 0; s < nseries; s++ {
			for b := g.First; b <= g.Last; b++ {
				g.Totals[s] += v.Count(s, b)
			}
			g.Values[s] = g.Totals[s]
			if countArea {
				g.Values[s] /= float64(g.Rows)
			}
		}

		value, total := 0.0, 0.0
		if p.Mode == render.Stack {
			for s := 0; s < nseries; s++ {
				value += g.Values[s]
				total += g.Totals[s]
			}
		} else {
			for s := 0; s < nseries; s++ {
				if g.Values[s] > value {
					value, total = g.Values[s], g.Totals[s]
				}
			}
		}
		if value > p.MaxCount {
			p.MaxCount, p.PeakCount = value, total
		}
	}
}
