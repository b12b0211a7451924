package grid

import (
	"fmt"
	"testing"

	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/compose"
	"github.com/matzehuels/histoprint/pkg/render/glyph"
	"github.com/matzehuels/histoprint/pkg/render/layout"
	"github.com/matzehuels/histoprint/pkg/render/style"
	"github.com/matzehuels/histoprint/pkg/render/summary"
)

func assemble(t *testing.T, set hist.Set, opts Options, columns, lines int, pal style.Palette, enc glyph.Encoding) ([]Line, *layout.Plan) {
	t.Helper()
	v, err := hist.Validate(set)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	p, err := layout.New(v, layout.Config{
		Columns:       columns,
		Lines:         lines,
		Precision:     -1,
		Mode:          opts.Mode,
		ReservedLines: Reserved(opts),
	})
	if err != nil {
		t.Fatalf("layout.New() error: %v", err)
	}
	cells := compose.Compose(p, pal, compose.Options{Mode: opts.Mode, Combining: true})
	out := Assemble(Input{
		Options:  opts,
		Plan:     p,
		Cells:    cells,
		Stats:    summary.Compute(v, opts.Mode),
		Entries:  summary.Entries(v, pal),
		Encoding: enc,
	})
	return out, p
}

var scenario = hist.Set{
	Edges:  []float64{0, 1, 2, 3},
	Series: []hist.Series{{Counts: []float64{1, 2, 1}}},
}

func TestAssembleScenario(t *testing.T) {
	pal := style.Palette{Symbols: []rune("|")}
	opts := Options{Title: "T", ScaleLine: true}
	got, _ := assemble(t, scenario, opts, 14, 6, pal, glyph.ASCII)
	want := []string{
		"      T",
		"            2╷",
		" 0 _|||||     ",
		" 1 _||||||||||",
		" 2 _|||||     ",
		" 3 _",
	}
	if len(got) != len(want) {
		t.Fatalf("len(Assemble()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i].Text, want[i])
		}
	}
}

func TestAssembleSpans(t *testing.T) {
	pal := style.Palette{Symbols: []rune("|"), FG: []style.Color{"r"}}
	got, _ := assemble(t, scenario, Options{}, 14, 4, pal, glyph.Unicode)
	row := got[0]
	// Five covered cells encode as bar plus joiner, merged into one span.
	want := []Span{{Start: 4, End: 14, FG: "r"}}
	if len(row.Spans) != len(want) || row.Spans[0] != want[0] {
		t.Errorf("Spans = %+v, want %+v", row.Spans, want)
	}
	if w := row.Width(); w != 14 {
		t.Errorf("Width() = %d, want 14", w)
	}
}

func TestAssembleLineCount(t *testing.T) {
	set := hist.Set{
		Edges: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		Series: []hist.Series{
			{Label: "a", Counts: []float64{1, 3, 5, 7, 5, 3, 1, 0}},
			{Label: "b", Counts: []float64{0, 1, 2, 3, 4, 5, 6, 7}},
		},
	}
	pal := style.DefaultPalette()
	for _, mode := range []render.Mode{render.Overlay, render.Stack} {
		for _, title := range []string{"", "title"} {
			for _, scale := range []bool{false, true} {
				for _, legend := range []bool{false, true} {
					for _, sum := range []bool{false, true} {
						for _, lines := range []int{3, 12, 20, 40} {
							opts := Options{Mode: mode, Title: title, ScaleLine: scale, Legend: legend, Summary: sum}
							name := fmt.Sprintf("%v/%q/scale=%v/legend=%v/summary=%v/lines=%d", mode, title, scale, legend, sum, lines)
							t.Run(name, func(t *testing.T) {
								out, p := assemble(t, set, opts, 60, lines, pal, glyph.Unicode)
								if want := LineCount(opts, p.Rows()); len(out) != want {
									t.Errorf("len(Assemble()) = %d, want %d", len(out), want)
								}
								if lines > Reserved(opts) && len(out) > lines {
									t.Errorf("len(Assemble()) = %d, exceeds %d lines", len(out), lines)
								}
							})
						}
					}
				}
			}
		}
	}
}

func TestAssemblePlotWidthConstant(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{0, 1, 2, 3},
		Series: []hist.Series{{Counts: []float64{1, 2, 1}}, {Counts: []float64{2, 0, 1}}},
	}
	out, p := assemble(t, set, Options{}, 30, 4, style.DefaultPalette(), glyph.Unicode)
	for i := 0; i < p.Rows(); i++ {
		if w := out[i].Width(); w != p.Columns {
			t.Errorf("line %d width = %d, want %d", i, w, p.Columns)
		}
	}
}

func TestAssembleBlankPlot(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{0, 1, 2},
		Series: []hist.Series{{Counts: []float64{0, 0}}},
	}
	out, _ := assemble(t, set, Options{ScaleLine: true}, 20, 4, style.DefaultPalette(), glyph.Unicode)
	if out[0].Text != "                  0╷" {
		t.Errorf("scale line = %q", out[0].Text)
	}
	for _, l := range out[1:3] {
		if len(l.Spans) != 0 {
			t.Errorf("blank row has spans: %+v", l.Spans)
		}
	}
}

func TestAssembleSummary(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{0, 1, 2, 3},
		Series: []hist.Series{{Label: "A", Counts: []float64{1, 2, 1}}},
	}
	pal := style.Palette{Symbols: []rune("|"), FG: []style.Color{"g"}}
	out, _ := assemble(t, set, Options{Summary: true}, 17, 10, pal, glyph.Unicode)
	tail := out[len(out)-5:]
	if tail[0].Text != "      │\u034f A" {
		t.Errorf("legend = %q", tail[0].Text)
	}
	if len(tail[0].Spans) != 1 || tail[0].Spans[0] != (Span{Start: 6, End: 8, FG: "g"}) {
		t.Errorf("legend spans = %+v", tail[0].Spans)
	}
	wantRows := []string{
		"Tot:     4.00e+00",
		"Avg:     1.50e+00",
		"Std:     7.07e-01",
		"Exc:            0",
	}
	for i, want := range wantRows {
		if tail[i+1].Text != want {
			t.Errorf("summary row %d = %q, want %q", i, tail[i+1].Text, want)
		}
	}
}

func TestLineSegments(t *testing.T) {
	l := Line{Text: "ab│c", Spans: []Span{{Start: 2, End: 3, FG: "r"}}}
	got := l.Segments()
	want := []Segment{{Text: "ab"}, {Text: "│", FG: "r"}, {Text: "c"}}
	if len(got) != len(want) {
		t.Fatalf("Segments() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Segments()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReserved(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"bare", Options{}, 1},
		{"title and scale", Options{Title: "x", ScaleLine: true}, 3},
		{"legend only", Options{Legend: true}, 2},
		{"overlay summary", Options{Summary: true}, 6},
		{"stack summary", Options{Mode: render.Stack, Summary: true, Legend: true}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reserved(tt.opts); got != tt.want {
				t.Errorf("Reserved() = %d, want %d", got, tt.want)
			}
		})
	}
}
