package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/observability"
	"github.com/matzehuels/histoprint/pkg/render/compose"
	"github.com/matzehuels/histoprint/pkg/render/grid"
	"github.com/matzehuels/histoprint/pkg/render/layout"
	"github.com/matzehuels/histoprint/pkg/render/summary"
)

// Result contains the outputs of a render.
type Result struct {
	// Lines is the assembled output.
	Lines []grid.Line

	// Plan is the computed geometry.
	Plan *layout.Plan

	// Stats holds per-series statistics when the summary is enabled.
	Stats []summary.Stats

	// Timings records how long each stage took.
	Timings Timings
}

// Timings contains per-stage execution times.
type Timings struct {
	Validate time.Duration
	Layout   time.Duration
	Compose  time.Duration
	Summary  time.Duration
	Assemble time.Duration
}

// Total returns the summed stage time.
func (t Timings) Total() time.Duration {
	return t.Validate + t.Layout + t.Compose + t.Summary + t.Assemble
}

// Render runs the full pipeline on set. The set is never modified.
// Rendering the same set with the same options always yields identical
// lines.
func Render(set hist.Set, opts Options) ([]grid.Line, error) {
	res, err := execute(context.Background(), set, opts, observability.NoopRenderHooks{})
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// execute runs every stage and reports each to hooks.
func execute(ctx context.Context, set hist.Set, opts Options, hooks observability.RenderHooks) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{}

	stage := func(name observability.Stage, dst *time.Duration, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		err := fn()
		*dst = time.Since(start)
		hooks.OnStageComplete(ctx, name, *dst, err)
		return err
	}

	var v *hist.Validated
	if err := stage(observability.StageValidate, &res.Timings.Validate, func() error {
		var err error
		v, err = hist.Validate(withLabels(set, &opts))
		return err
	}); err != nil {
		return nil, err
	}

	pal := opts.Palette()
	entries := summary.Entries(v, pal)
	gopts := opts.GridOptions(summary.HasLabels(entries))

	if err := stage(observability.StageLayout, &res.Timings.Layout, func() error {
		var err error
		res.Plan, err = layout.New(v, opts.LayoutConfig(grid.Reserved(gopts)))
		return err
	}); err != nil {
		return nil, err
	}

	enc := opts.GlyphEncoding()
	var cells [][]compose.Cell
	if err := stage(observability.StageCompose, &res.Timings.Compose, func() error {
		cells = compose.Compose(res.Plan, pal, compose.Options{
			Mode:       opts.Mode,
			Combining:  opts.Combining(),
			Fractional: !opts.NoFractional,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if opts.Summary {
		if err := stage(observability.StageSummary, &res.Timings.Summary, func() error {
			res.Stats = summary.Compute(v, opts.Mode)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if err := stage(observability.StageAssemble, &res.Timings.Assemble, func() error {
		res.Lines = grid.Assemble(grid.Input{
			Options:  gopts,
			Plan:     res.Plan,
			Cells:    cells,
			Stats:    res.Stats,
			Entries:  entries,
			Encoding: enc,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// withLabels returns set with configured labels applied. The caller's
// series slice is not touched.
func withLabels(set hist.Set, opts *Options) hist.Set {
	if len(opts.Labels) == 0 {
		return set
	}
	out := hist.Set{Edges: set.Edges, Series: make([]hist.Series, len(set.Series))}
	for i, s := range set.Series {
		out.Series[i] = hist.Series{Label: opts.LabelFor(i, s.Label), Counts: s.Counts}
	}
	return out
}
