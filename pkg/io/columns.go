package io

import (
	"slices"
	"strconv"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
)

// Columns holds raw samples, one slice per column.
type Columns struct {
	// Names are the header names. Nil for tables without a header.
	Names []string

	// Data holds the samples of each column. All columns have equal length.
	Data [][]float64
}

// Len returns the number of columns.
func (c Columns) Len() int { return len(c.Data) }

// Select returns the columns named by fields, in the order given.
// A field is a header name or a zero-based column index. Tables without
// header names accept indices only. An empty fields list selects all
// columns.
func (c Columns) Select(fields []string) (Columns, error) {
	if len(fields) == 0 {
		return c, nil
	}
	out := Columns{Data: make([][]float64, 0, len(fields))}
	if c.Names != nil {
		out.Names = make([]string, 0, len(fields))
	}
	for _, f := range fields {
		i, err := c.index(f)
		if err != nil {
			return Columns{}, err
		}
		out.Data = append(out.Data, c.Data[i])
		if c.Names != nil {
			out.Names = append(out.Names, c.Names[i])
		}
	}
	return out, nil
}

func (c Columns) index(field string) (int, error) {
	if err := errors.ValidateFieldName(field); err != nil {
		return 0, err
	}
	if i := slices.Index(c.Names, field); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(field)
	if err != nil {
		if c.Names == nil {
			return 0, errors.New(errors.ErrCodeInvalidField, "fields of a table must be column indices, got %q", field)
		}
		return 0, errors.New(errors.ErrCodeInvalidField, "unknown column %q", field)
	}
	if i < 0 || i >= len(c.Data) {
		return 0, errors.New(errors.ErrCodeInvalidField, "column %d out of range (input has %d columns)", i, len(c.Data))
	}
	return i, nil
}

// Histogram bins every column with spec. Header names become labels.
func (c Columns) Histogram(spec BinSpec) (hist.Set, error) {
	if len(c.Data) == 0 {
		return hist.Set{}, errors.New(errors.ErrCodeInvalidInput, "input has no columns")
	}
	edges, err := spec.Resolve(c.Data...)
	if err != nil {
		return hist.Set{}, err
	}
	return hist.BinSamples(c.Data, c.Names, edges), nil
}
