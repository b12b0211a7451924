package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/observability"
)

// Runner encapsulates pipeline execution with logging and stage hooks.
//
// The Runner is stateless except for the logger - it doesn't store render
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Render runs the complete pipeline, reporting every stage to the
// registered observability hooks.
func (r *Runner) Render(ctx context.Context, set hist.Set, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	logger := opts.Logger

	hooks := observability.Render()
	nbins := max(len(set.Edges)-1, 0)
	hooks.OnRenderStart(ctx, len(set.Series), nbins)

	start := time.Now()
	res, err := execute(ctx, set, opts, hooks)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnRenderComplete(ctx, 0, elapsed, err)
		return nil, fmt.Errorf("render: %w", err)
	}
	hooks.OnRenderComplete(ctx, len(res.Lines), elapsed, nil)

	logger.Debug("validated input", "series", len(set.Series), "bins", nbins, "duration", res.Timings.Validate)
	logger.Debug("computed layout",
		"columns", res.Plan.Columns,
		"lines", res.Plan.Lines,
		"plot_width", res.Plan.PlotWidth,
		"groups", len(res.Plan.Groups),
		"max_count", res.Plan.MaxCount,
		"duration", res.Timings.Layout)
	logger.Debug("composed cells", "duration", res.Timings.Compose)
	if opts.Summary {
		logger.Debug("computed summary", "duration", res.Timings.Summary)
	}
	logger.Debug("assembled lines", "lines", len(res.Lines), "duration", res.Timings.Assemble)

	return res, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
