package io

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
)

// DefaultBins is the bin count used when none is given.
const DefaultBins = 10

// BinSpec describes how raw samples are binned. Edges take precedence over
// Count; a zero BinSpec means DefaultBins linear bins.
type BinSpec struct {
	Count int
	Edges []float64
}

// ParseBinSpec parses a bin count ("20") or a list of edges separated by
// whitespace or commas ("-5 -1 0 1 5").
func ParseBinSpec(s string) (BinSpec, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	switch len(fields) {
	case 0:
		return BinSpec{}, nil
	case 1:
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 1 {
			return BinSpec{}, errors.Configuration("bins must be a positive count or at least two edges, got %q", s)
		}
		return BinSpec{Count: n}, nil
	}

	edges := make([]float64, len(fields))
	for i, f := range fields {
		e, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(e) || math.IsInf(e, 0) {
			return BinSpec{}, errors.Configuration("invalid bin edge %q", f)
		}
		if i > 0 && e <= edges[i-1] {
			return BinSpec{}, errors.Configuration("bin edges must be strictly increasing (%v after %v)", e, edges[i-1])
		}
		edges[i] = e
	}
	return BinSpec{Edges: edges}, nil
}

// String returns the spec in the form accepted by ParseBinSpec.
func (b BinSpec) String() string {
	if len(b.Edges) > 0 {
		parts := make([]string, len(b.Edges))
		for i, e := range b.Edges {
			parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	}
	if b.Count == 0 {
		return strconv.Itoa(DefaultBins)
	}
	return strconv.Itoa(b.Count)
}

// Resolve returns the bin edges for samples. With a count, the edges span
// the finite range of all samples.
func (b BinSpec) Resolve(samples ...[]float64) ([]float64, error) {
	if len(b.Edges) > 0 {
		return slices.Clone(b.Edges), nil
	}
	n := b.Count
	if n == 0 {
		n = DefaultBins
	}
	lo, hi, ok := hist.Range(samples...)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no finite samples to bin")
	}
	return hist.LinearEdges(lo, hi, n)
}
