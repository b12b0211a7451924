package hist

import (
	"math"
	"slices"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// Validated is an immutable, checked copy of a Set. Accessors never expose
// the internal slices.
type Validated struct {
	edges    []float64
	labels   []string
	counts   [][]float64
	excluded [][]bool
}

// Validate checks set and returns a validated copy. set is not modified.
//
// It fails with a VALIDATION error when there are no series, fewer than two
// edges, edges that are not finite and strictly increasing, or a series
// whose count length does not match the edges. Non-finite and negative
// counts are normalized to zero and flagged as excluded.
func Validate(set Set) (*Validated, error) {
	if len(set.Series) == 0 {
		return nil, errors.Validation("histogram set has no series")
	}
	if len(set.Edges) < 2 {
		return nil, errors.Validation("need at least two bin edges, got %d", len(set.Edges))
	}
	for i, e := range set.Edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, errors.Validation("bin edge %d is not finite (%v)", i, e)
		}
		if i > 0 && e <= set.Edges[i-1] {
			return nil, errors.Validation("bin edges not strictly increasing at index %d (%v after %v)",
				i, e, set.Edges[i-1])
		}
	}

	nbins := len(set.Edges) - 1
	v := &Validated{
		edges:    slices.Clone(set.Edges),
		labels:   make([]string, len(set.Series)),
		counts:   make([][]float64, len(set.Series)),
		excluded: make([][]bool, len(set.Series)),
	}
	for s, sr := range set.Series {
		if len(sr.Counts) != nbins {
			return nil, errors.Validation("series %d has %d counts but %d edges (want %d counts)",
				s, len(sr.Counts), len(set.Edges), nbins)
		}
		v.labels[s] = sr.Label
		v.counts[s] = make([]float64, nbins)
		v.excluded[s] = make([]bool, nbins)
		for b, c := range sr.Counts {
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				v.excluded[s][b] = true
				continue
			}
			v.counts[s][b] = c
		}
	}
	return v, nil
}

// NumBins returns the number of bins.
func (v *Validated) NumBins() int { return len(v.edges) - 1 }

// NumSeries returns the number of series.
func (v *Validated) NumSeries() int { return len(v.counts) }

// Edges returns a copy of the bin edges.
func (v *Validated) Edges() []float64 { return slices.Clone(v.edges) }

// Edge returns edge i.
func (v *Validated) Edge(i int) float64 { return v.edges[i] }

// Label returns the label of series s.
func (v *Validated) Label(s int) string { return v.labels[s] }

// Labels returns a copy of all series labels.
func (v *Validated) Labels() []string { return slices.Clone(v.labels) }

// Count returns the normalized count of series s in bin b.
// Excluded bins report zero.
func (v *Validated) Count(s, b int) float64 { return v.counts[s][b] }

// Excluded reports whether bin b of series s held a non-finite or negative
// value in the source data.
func (v *Validated) Excluded(s, b int) bool { return v.excluded[s][b] }

// ExcludedCount returns the number of excluded bins in series s.
func (v *Validated) ExcludedCount(s int) int {
	n := 0
	for _, x := range v.excluded[s] {
		if x {
			n++
		}
	}
	return n
}

// Centers returns the bin centers.
func (v *Validated) Centers() []float64 {
	centers := make([]float64, v.NumBins())
	for i := range centers {
		centers[i] = (v.edges[i] + v.edges[i+1]) / 2
	}
	return centers
}

// Widths returns the bin widths.
func (v *Validated) Widths() []float64 {
	widths := make([]float64, v.NumBins())
	for i := range widths {
		widths[i] = v.edges[i+1] - v.edges[i]
	}
	return widths
}
