// Package pkg provides the libraries behind histoprint, a renderer that
// draws one or more histograms sharing the same bin edges as text, with the
// bin axis running down the terminal and bar lengths across it.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. [hist] - Histogram sets, validation and binning of raw samples
//  2. [render] - Layout, composition and output of the text plot
//  3. [pipeline] - Orchestration (validate → layout → compose → assemble)
//
// Supporting packages:
//
//   - [io]: reading tables, CSV and JSON into a [hist.Set]
//   - [cache]: reuse of binned input between runs
//   - [errors]: coded errors with user-facing messages
//   - [observability]: hooks for import and render events
//   - [buildinfo]: version information set at link time
//
// # Architecture
//
// The data flow of one render:
//
//	file / stdin
//	     ↓
//	[io] package (parse, select fields, bin)
//	     ↓
//	[hist.Set] (shared edges, one count slice per series)
//	     ↓
//	[pipeline] package (validate, layout, compose, summary, assemble)
//	     ↓
//	[render/sink] package (ANSI, plain text or JSON lines)
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/histoprint/pkg/hist"
//	    "github.com/matzehuels/histoprint/pkg/pipeline"
//	    "github.com/matzehuels/histoprint/pkg/render/sink"
//	)
//
//	set := hist.Set{
//	    Edges:  []float64{0, 1, 2, 3},
//	    Series: []hist.Series{{Label: "A", Counts: []float64{1, 3, 2}}},
//	}
//	lines, err := pipeline.Render(set, pipeline.Options{Columns: 60, Summary: true})
//	if err != nil {
//	    return err
//	}
//	return sink.NewPlain(os.Stdout).Write(lines)
//
// Use [pipeline.Runner] instead of [pipeline.Render] for logging, context
// cancellation and the intermediate layout.
//
// [hist]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/hist
// [render]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/buildinfo
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/histoprint/pkg/render/sink
package pkg
