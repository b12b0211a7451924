// Package pipeline runs the histogram rendering pipeline.
//
// This package ties the render stages together so the CLI, the interactive
// viewer and library callers share one code path with identical defaults.
//
// # Architecture
//
// The pipeline consists of five stages, each a pure function of the
// previous one:
//
//  1. Validate: check edges and counts ([hist.Validate])
//  2. Layout: size the plot, merge or expand bins ([layout.New])
//  3. Compose: map series values to cells ([compose.Compose])
//  4. Summary: per-series statistics ([summary.Compute])
//  5. Assemble: order lines and styling spans ([grid.Assemble])
//
// # Usage
//
// Render directly:
//
//	lines, err := pipeline.Render(set, pipeline.Options{Columns: 80, Lines: 20})
//
// Or through a Runner to get logging and stage hooks:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Render(ctx, set, opts)
//	if err != nil {
//	    return err
//	}
//	return sink.NewANSI(os.Stdout).Write(result.Lines)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/glyph"
	"github.com/matzehuels/histoprint/pkg/render/grid"
	"github.com/matzehuels/histoprint/pkg/render/layout"
	"github.com/matzehuels/histoprint/pkg/render/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Viewer, and Library
// =============================================================================

const (
	// DefaultSymbols is the symbol cycle. The first series is drawn as a
	// colored background, later ones as glyphs stacked on top of it.
	DefaultSymbols = style.DefaultSymbols

	// DefaultFGColors is the foreground color cycle.
	DefaultFGColors = style.DefaultFGColors

	// DefaultBGColors is the background color cycle.
	DefaultBGColors = style.DefaultBGColors

	// DefaultEncoding is the glyph encoding.
	DefaultEncoding = "unicode"

	// MaxPrecision bounds explicit label precision.
	MaxPrecision = 12
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a render.
// Boolean options are phrased so that the zero value is the default.
type Options struct {
	Mode    render.Mode `json:"mode" toml:"mode"`
	Columns int         `json:"columns,omitempty" toml:"columns,omitempty"` // 0 = terminal width - 1
	Lines   int         `json:"lines,omitempty" toml:"lines,omitempty"`     // 0 = from width and terminal height

	Title   string   `json:"title,omitempty" toml:"title,omitempty"`
	Labels  []string `json:"labels,omitempty" toml:"labels,omitempty"` // cycled over series
	Summary bool     `json:"summary,omitempty" toml:"summary,omitempty"`

	Symbols  string `json:"symbols,omitempty" toml:"symbols,omitempty"`
	FGColors string `json:"fg_colors,omitempty" toml:"fg_colors,omitempty"`
	BGColors string `json:"bg_colors,omitempty" toml:"bg_colors,omitempty"`

	Notation  render.Notation `json:"notation" toml:"notation"`
	Precision *int            `json:"precision,omitempty" toml:"precision,omitempty"` // nil = automatic

	Encoding     string `json:"encoding,omitempty" toml:"encoding,omitempty"`
	NoCombining  bool   `json:"no_combining,omitempty" toml:"no_combining,omitempty"`   // last series wins overlapping cells
	NoFractional bool   `json:"no_fractional,omitempty" toml:"no_fractional,omitempty"` // no marks for partial columns
	NoFill       bool   `json:"no_fill,omitempty" toml:"no_fill,omitempty"`             // keep blank cells on colored backgrounds
	NoScaleLine  bool   `json:"no_scale_line,omitempty" toml:"no_scale_line,omitempty"`
	CountLength  bool   `json:"count_length,omitempty" toml:"count_length,omitempty"` // bar length instead of area represents count
	UniformRows  bool   `json:"uniform_rows,omitempty" toml:"uniform_rows,omitempty"` // one row per bin regardless of width

	// Runtime options (not serialized)
	Logger *log.Logger     `json:"-" toml:"-"`
	Size   layout.SizeFunc `json:"-" toml:"-"`
}

// SetDefaults fills unset string options with the built-in cycles.
func (o *Options) SetDefaults() {
	if o.Symbols == "" {
		o.Symbols = DefaultSymbols
	}
	if o.FGColors == "" {
		o.FGColors = DefaultFGColors
	}
	if o.BGColors == "" {
		o.BGColors = DefaultBGColors
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options. Errors carry the CONFIGURATION code.
func (o *Options) Validate() error {
	if o.Columns < 0 || o.Lines < 0 {
		return errors.Configuration("columns and lines must not be negative (got %d, %d)", o.Columns, o.Lines)
	}
	if o.Precision != nil && (*o.Precision < 0 || *o.Precision > MaxPrecision) {
		return errors.Configuration("precision must be between 0 and %d, got %d", MaxPrecision, *o.Precision)
	}
	if err := errors.ValidateLabel(o.Title); err != nil {
		return err
	}
	for _, l := range o.Labels {
		if err := errors.ValidateLabel(l); err != nil {
			return err
		}
	}
	if err := errors.ValidateSymbols(o.Symbols); err != nil {
		return err
	}
	if _, err := style.ParseColors(o.FGColors); err != nil {
		return err
	}
	if _, err := style.ParseColors(o.BGColors); err != nil {
		return err
	}
	if _, ok := glyph.ByName(o.Encoding); !ok {
		return errors.Configuration("unknown encoding %q (must be one of: unicode, box, ascii)", o.Encoding)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Palette returns the symbol and color cycles. Options must be valid.
func (o *Options) Palette() style.Palette {
	fg, _ := style.ParseColors(o.FGColors)
	bg, _ := style.ParseColors(o.BGColors)
	return style.NewPalette(o.Symbols, fg, bg)
}

// GlyphEncoding returns the encoding for the options. Without combining
// support the Unicode encoding degrades to box drawing only.
func (o *Options) GlyphEncoding() glyph.Encoding {
	enc, ok := glyph.ByName(o.Encoding)
	if !ok {
		enc = glyph.Unicode
	}
	if o.NoCombining && enc == glyph.Unicode {
		enc = glyph.Box
	}
	if o.NoFill {
		return enc
	}
	if enc == glyph.ASCII {
		return glyph.WithFill(enc, glyph.HashFill)
	}
	return glyph.WithFill(enc, glyph.BlockFill)
}

// Combining reports whether overlapping overlay series are drawn as
// combining marks. It is false with NoCombining or when the encoding cannot
// draw marks; composition then lets the last covering series win.
func (o *Options) Combining() bool {
	return !o.NoCombining && o.GlyphEncoding().Combining()
}

// PrecisionValue returns the label precision, -1 when automatic.
func (o *Options) PrecisionValue() int {
	if o.Precision == nil {
		return -1
	}
	return *o.Precision
}

// LabelFor returns the label of series s, or fallback when no labels are
// configured.
func (o *Options) LabelFor(s int, fallback string) string {
	if len(o.Labels) == 0 {
		return fallback
	}
	return o.Labels[s%len(o.Labels)]
}

// GridOptions returns the assembly options for a set with or without
// labeled series.
func (o *Options) GridOptions(labeled bool) grid.Options {
	return grid.Options{
		Mode:      o.Mode,
		Title:     o.Title,
		ScaleLine: !o.NoScaleLine,
		Legend:    labeled,
		Summary:   o.Summary,
	}
}

// LayoutConfig returns the planner configuration.
func (o *Options) LayoutConfig(reserved int) layout.Config {
	return layout.Config{
		Columns:       o.Columns,
		Lines:         o.Lines,
		Size:          o.Size,
		Notation:      o.Notation,
		Precision:     o.PrecisionValue(),
		Mode:          o.Mode,
		ScaleBinWidth: !o.UniformRows,
		CountArea:     !o.CountLength,
		ReservedLines: reserved,
	}
}
