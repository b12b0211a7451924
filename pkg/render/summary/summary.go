// Package summary computes per-series statistics and lays out the legend
// and summary block printed under a plot.
//
// Statistics use only bins that held finite, non-negative counts in the
// source data. Mean and standard deviation are weighted by count over the
// bin centers; the standard deviation is the population one. A series with
// zero total has no defined mean or deviation and prints "n/a".
//
// In stack mode only the totals are reported, since per-bin weighting is
// not meaningful across a cumulative stack.
package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/style"
)

const (
	// Prefix is the width of the row-name column ("Tot:" plus a space).
	Prefix = 5

	// minLabelWidth keeps entry columns wide enough for a formatted value.
	minLabelWidth = 9

	// minTruncatedWidth is the narrowest label column left after
	// truncation. The entry column then still holds a "% .2e" value plus
	// one separating space.
	minTruncatedWidth = len(" 0.00e+00") + 1 - 3

	// NotAvailable replaces undefined statistics.
	NotAvailable = "n/a"

	ellipsis = "…"
)

// Stats holds the summary statistics of one series.
type Stats struct {
	Sum      float64
	Mean     float64
	Std      float64
	Defined  bool // Mean and Std are meaningful
	Excluded int  // bins dropped because of non-finite or negative counts
}

// Compute returns the statistics of every series in v.
func Compute(v *hist.Validated, mode render.Mode) []Stats {
	centers := v.Centers()
	out := make([]Stats, v.NumSeries())
	for s := range out {
		st := Stats{Excluded: v.ExcludedCount(s)}
		var weighted float64
		for b, x := range centers {
			if v.Excluded(s, b) {
				continue
			}
			c := v.Count(s, b)
			st.Sum += c
			weighted += c * x
		}
		if mode == render.Overlay && st.Sum > 0 {
			st.Mean = weighted / st.Sum
			var sq float64
			for b, x := range centers {
				if v.Excluded(s, b) {
					continue
				}
				d := x - st.Mean
				sq += v.Count(s, b) * d * d
			}
			st.Std = math.Sqrt(sq / st.Sum)
			st.Defined = true
		}
		out[s] = st
	}
	return out
}

// Entry is one legend entry: a series label and its styled symbol.
type Entry struct {
	Label  string
	Symbol rune
	FG, BG style.Color
}

// Entries builds the legend entries of v with symbols and colors from pal.
func Entries(v *hist.Validated, pal style.Palette) []Entry {
	out := make([]Entry, v.NumSeries())
	for s := range out {
		out[s] = Entry{Label: v.Label(s), Symbol: pal.Symbol(s), FG: pal.Foreground(s), BG: pal.Background(s)}
	}
	return out
}

// HasLabels reports whether any entry has a non-empty label.
func HasLabels(entries []Entry) bool {
	for _, e := range entries {
		if e.Label != "" {
			return true
		}
	}
	return false
}

// Block is the formatted legend and summary.
//
// Each legend entry occupies " " + symbol + " " + label, where the label
// is padded to Widths[i] display columns. The legend line starts with
// Indent spaces followed by Prefix spaces; summary rows start with Indent
// spaces, then the row name padded to Prefix, then one value per entry
// right-aligned to the entry's width.
type Block struct {
	Indent  int
	Entries []Entry // labels truncated and padded to their column width
	Widths  []int
	Rows    []string
}

// EntryWidth returns the display width of legend entry i.
func (b Block) EntryWidth(i int) int { return 3 + b.Widths[i] }

// RowCount returns the number of summary rows printed in mode.
func RowCount(mode render.Mode) int {
	if mode == render.Stack {
		return 2
	}
	return 4
}

// Format lays out entries and, when stats is non-nil, the summary rows for
// a plot of the given total width. Labels are truncated with an ellipsis
// when the legend would not fit.
func Format(stats []Stats, entries []Entry, columns int, mode render.Mode) Block {
	widths := labelWidths(entries, columns)
	b := Block{Entries: make([]Entry, len(entries)), Widths: widths}

	total := Prefix
	for i, e := range entries {
		label := runewidth.Truncate(e.Label, widths[i], ellipsis)
		e.Label = runewidth.FillRight(label, widths[i])
		b.Entries[i] = e
		total += b.EntryWidth(i)
	}
	b.Indent = max(columns-total, 0) / 2

	if stats == nil {
		return b
	}
	b.Rows = append(b.Rows, b.row("Tot:", stats, func(s Stats) string { return sci(s.Sum) }))
	if mode == render.Overlay {
		b.Rows = append(b.Rows,
			b.row("Avg:", stats, func(s Stats) string {
				if !s.Defined {
					return NotAvailable
				}
				return sci(s.Mean)
			}),
			b.row("Std:", stats, func(s Stats) string {
				if !s.Defined {
					return NotAvailable
				}
				return sci(s.Std)
			}),
		)
	}
	b.Rows = append(b.Rows, b.row("Exc:", stats, func(s Stats) string { return fmt.Sprintf("%d", s.Excluded) }))
	return b
}

func (b Block) row(name string, stats []Stats, value func(Stats) string) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", b.Indent))
	fmt.Fprintf(&sb, "%-*s", Prefix, name)
	for i := range b.Entries {
		v := NotAvailable
		if i < len(stats) {
			v = value(stats[i])
		}
		fmt.Fprintf(&sb, "%*s", b.EntryWidth(i), v)
	}
	return strings.TrimRight(sb.String(), " ")
}

// labelWidths pads labels to at least minLabelWidth and shrinks them evenly
// when the legend would exceed columns, but never below minTruncatedWidth.
// A legend with too many entries for columns overflows rather than
// misaligning the summary values.
func labelWidths(entries []Entry, columns int) []int {
	widths := make([]int, len(entries))
	total := Prefix
	for i, e := range entries {
		widths[i] = max(runewidth.StringWidth(e.Label), minLabelWidth)
		total += 3 + widths[i]
	}
	if total <= columns || len(entries) == 0 {
		return widths
	}
	budget := max((columns-Prefix)/len(entries)-3, minTruncatedWidth)
	for i := range widths {
		widths[i] = min(widths[i], budget)
	}
	return widths
}

func sci(v float64) string {
	return fmt.Sprintf("% .2e", v)
}
