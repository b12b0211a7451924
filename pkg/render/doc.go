// Package render turns histogram sets into styled terminal text.
//
// # Overview
//
// Rendering is a single forward pass through pure stages:
//
//	hist.Validate → layout.New → compose.Compose → summary.Compute → grid.Assemble → sink
//
//   - [layout]: terminal geometry, edge labels, bin merging, count scale
//   - [compose]: per-cell glyph and color resolution, combining marks
//   - [summary]: legend and per-series statistics
//   - [grid]: final ordered lines with styling spans
//   - [glyph]: Unicode or ASCII encodings of composed cells
//   - [sink]: ANSI (lipgloss) and plain-text writers
//
// Every stage is a function of its inputs. There is no shared state, so
// independent renders can run concurrently without coordination.
//
// # Modes
//
// [Overlay] draws every series from column zero and composes glyphs where
// bars overlap. [Stack] sums series per bin so each series owns a distinct
// column range.
//
// [layout]: github.com/matzehuels/histoprint/pkg/render/layout
// [compose]: github.com/matzehuels/histoprint/pkg/render/compose
// [summary]: github.com/matzehuels/histoprint/pkg/render/summary
// [grid]: github.com/matzehuels/histoprint/pkg/render/grid
// [glyph]: github.com/matzehuels/histoprint/pkg/render/glyph
// [sink]: github.com/matzehuels/histoprint/pkg/render/sink
package render
