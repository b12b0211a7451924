// Package io reads histogram input from files and streams.
//
// # Overview
//
// Three input formats are understood:
//
//   - Table: whitespace separated numeric columns, one sample per row.
//     Lines starting with '#' and blank lines are skipped. "nan" parses
//     as a missing sample.
//   - CSV: comma separated columns with a header row. The header names
//     become the default series labels.
//   - JSON: a pre-binned [hist.Set].
//
// The JSON format mirrors [hist.Set]:
//
//	{
//	  "edges":  [0, 1, 2, 3],
//	  "series": [{"label": "A", "counts": [1, 4, 2]}]
//	}
//
// Tables and CSV files hold raw samples. They are binned with a [BinSpec],
// either a bin count spread linearly over the finite sample range or an
// explicit list of edges.
//
// # Import
//
// Use [Import] to read a path ("-" for stdin) with format sniffing:
//
//	set, err := io.Import(ctx, "data.txt", io.Options{
//	    Fields: []string{"0", "2"},
//	    Bins:   io.BinSpec{Count: 20},
//	})
//
// Sniffing tries JSON when the input starts with '{', then a table, then
// CSV. Errors carry the INVALID_INPUT, INVALID_FIELD or FILE_NOT_FOUND
// codes of package errors.
//
// # Field Selection
//
// Fields pick columns before binning. Table columns are selected by
// zero-based index, CSV columns by header name or index, and JSON series
// by label or index.
//
// # Caching
//
// Set [Options].Cache to keep decoded sets between runs. Entries are keyed
// by the SHA-256 of the raw input together with the format, fields and bin
// spec, so any change to either produces a miss.
//
// # Export
//
// [WriteJSON] writes a set in the JSON format above, so binned samples can
// be cached and re-rendered without re-reading the raw data.
package io
