package hist

import (
	"math"
	"sort"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// LinearEdges returns n+1 evenly spaced edges from lo to hi.
// A degenerate range (lo == hi) is widened by 0.5 on each side, as numpy
// does, so a constant sample still produces a valid histogram.
func LinearEdges(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, errors.Configuration("number of bins must be positive, got %d", n)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, errors.Validation("cannot bin a range with non-finite bounds [%v, %v]", lo, hi)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	edges := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[n] = hi
	return edges, nil
}

// Range returns the smallest and largest finite value across samples.
// ok is false when no finite value exists.
func Range(samples ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, data := range samples {
		for _, x := range data {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				continue
			}
			lo = min(lo, x)
			hi = max(hi, x)
			ok = true
		}
	}
	return lo, hi, ok
}

// Histogram counts samples into the bins defined by edges.
// Bins are half-open [e_i, e_i+1) except the last, which is closed.
// Non-finite samples and samples outside the edges are ignored.
func Histogram(samples []float64, edges []float64) []float64 {
	nbins := len(edges) - 1
	if nbins < 1 {
		return nil
	}
	counts := make([]float64, nbins)
	lo, hi := edges[0], edges[nbins]
	for _, x := range samples {
		if math.IsNaN(x) || x < lo || x > hi {
			continue
		}
		// First edge strictly greater than x, minus one, is the bin index.
		i := sort.Search(len(edges), func(j int) bool { return edges[j] > x }) - 1
		if i >= nbins {
			i = nbins - 1
		}
		counts[i]++
	}
	return counts
}

// BinSamples histograms every column of samples with shared edges.
func BinSamples(columns [][]float64, labels []string, edges []float64) Set {
	set := Set{Edges: edges, Series: make([]Series, len(columns))}
	for i, col := range columns {
		set.Series[i].Counts = Histogram(col, edges)
		if i < len(labels) {
			set.Series[i].Label = labels[i]
		}
	}
	return set
}
