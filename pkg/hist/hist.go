// Package hist models histogram sets: ordered series of bin counts sharing
// one set of bin edges.
//
// # Overview
//
// A [Set] is raw, caller-owned input. [Validate] checks it and returns a
// [Validated] copy that the renderer consumes:
//
//	v, err := hist.Validate(hist.Set{
//	    Edges:  []float64{0, 1, 2, 3},
//	    Series: []hist.Series{{Label: "A", Counts: []float64{1, 2, 1}}},
//	})
//
// Validation rejects edges that are not finite and strictly increasing and
// series whose length does not match the edges. Counts that are not finite
// (NaN, ±Inf) or negative are replaced by zero and remembered as
// "excluded", so summary statistics can report them instead of silently
// skewing totals.
//
// # Adapters
//
// Anything that can produce edges and counts implements [Binned]; use
// [FromBinned] to turn it into a [Set]. The binning helpers [LinearEdges],
// [Range] and [Histogram] turn raw samples into counts with numpy
// histogram semantics.
package hist

import (
	"slices"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// Series is one histogram of a set.
type Series struct {
	Label  string    `json:"label"`
	Counts []float64 `json:"counts"`
}

// Set is an ordered collection of series sharing Edges.
// len(Edges) must equal len(Counts)+1 for every series.
type Set struct {
	Edges  []float64 `json:"edges"`
	Series []Series  `json:"series"`
}

// Binned is implemented by histogram types that can export their contents
// as bin edges plus one count slice per series.
type Binned interface {
	Bins() (edges []float64, counts [][]float64)
}

// Bins implements Binned.
func (s Set) Bins() ([]float64, [][]float64) {
	counts := make([][]float64, len(s.Series))
	for i, sr := range s.Series {
		counts[i] = sr.Counts
	}
	return s.Edges, counts
}

// Labels returns the series labels in order.
func (s Set) Labels() []string {
	labels := make([]string, len(s.Series))
	for i, sr := range s.Series {
		labels[i] = sr.Label
	}
	return labels
}

// FromBinned copies the contents of b into a new Set. Labels are assigned
// in order; missing labels are left empty.
func FromBinned(b Binned, labels ...string) Set {
	edges, counts := b.Bins()
	set := Set{Edges: slices.Clone(edges), Series: make([]Series, len(counts))}
	for i, c := range counts {
		set.Series[i].Counts = slices.Clone(c)
		if i < len(labels) {
			set.Series[i].Label = labels[i]
		}
	}
	return set
}

// Append adds the series of other to s. Both sets must share identical
// edges; a mismatch is a validation error, never a silent realignment.
func (s Set) Append(other Set) (Set, error) {
	if len(s.Series) > 0 && !slices.Equal(s.Edges, other.Edges) {
		return Set{}, errors.Validation("mismatched edge sets: cannot combine histograms with %d and %d edges",
			len(s.Edges), len(other.Edges))
	}
	out := Set{Edges: slices.Clone(other.Edges), Series: slices.Clone(s.Series)}
	if len(s.Series) > 0 {
		out.Edges = slices.Clone(s.Edges)
	}
	out.Series = append(out.Series, other.Series...)
	return out, nil
}
