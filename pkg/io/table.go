package io

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// ReadTable reads whitespace separated numeric columns from r.
// Comment lines ('#') and blank lines are skipped. Every row must have the
// same number of fields.
func ReadTable(r io.Reader) (Columns, error) {
	var cols Columns
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if cols.Data == nil {
			cols.Data = make([][]float64, len(fields))
		}
		if len(fields) != len(cols.Data) {
			return Columns{}, errors.New(errors.ErrCodeInvalidInput,
				"line %d: expected %d columns, got %d", line, len(cols.Data), len(fields))
		}
		for i, f := range fields {
			x, err := parseSample(f)
			if err != nil {
				return Columns{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d, column %d", line, i)
			}
			cols.Data[i] = append(cols.Data[i], x)
		}
	}
	if err := sc.Err(); err != nil {
		return Columns{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read table")
	}
	if cols.Data == nil {
		return Columns{}, errors.New(errors.ErrCodeInvalidInput, "table has no data rows")
	}
	return cols, nil
}

// ReadCSV reads comma separated columns with a header row from r.
// Empty cells are missing samples.
func ReadCSV(r io.Reader) (Columns, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err == io.EOF {
		return Columns{}, errors.New(errors.ErrCodeInvalidInput, "csv has no header")
	}
	if err != nil {
		return Columns{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}

	cols := Columns{Names: make([]string, len(header)), Data: make([][]float64, len(header))}
	for i, h := range header {
		cols.Names[i] = strings.TrimSpace(h)
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Columns{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
		}
		line, _ := cr.FieldPos(0)
		for i, f := range rec {
			f = strings.TrimSpace(f)
			x := math.NaN()
			if f != "" {
				if x, err = parseSample(f); err != nil {
					return Columns{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d, column %q", line, cols.Names[i])
				}
			}
			cols.Data[i] = append(cols.Data[i], x)
		}
	}
	return cols, nil
}

func parseSample(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
