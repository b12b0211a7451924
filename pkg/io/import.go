package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/histoprint/pkg/cache"
	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/observability"
)

// Stdin is the path that reads standard input.
const Stdin = "-"

// Format identifies an input format.
type Format string

const (
	FormatAuto  Format = ""
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// Formats lists the explicit formats accepted by ParseFormat.
var Formats = []string{string(FormatTable), string(FormatCSV), string(FormatJSON)}

// ParseFormat parses a format name. "" and "auto" select sniffing.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case "txt":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	}
	return FormatAuto, errors.Configuration("unknown input format %q (must be one of: auto, %s)", s, strings.Join(Formats, ", "))
}

// Options configures an import.
type Options struct {
	// Format forces an input format. FormatAuto sniffs the content.
	Format Format

	// Fields selects columns (table, CSV) or series (JSON).
	Fields []string

	// Bins controls binning of raw samples. Ignored for JSON.
	Bins BinSpec

	// Stdin replaces os.Stdin for the "-" path.
	Stdin io.Reader

	// Cache holds decoded sets keyed by input content and the options
	// above. Nil disables caching.
	Cache cache.Cache

	// CacheTTL is the lifetime of new entries. Zero uses cache.DefaultTTL.
	CacheTTL time.Duration
}

// cachedSet is the value stored in Options.Cache.
type cachedSet struct {
	Format Format   `json:"format"`
	Set    hist.Set `json:"set"`
}

func (o Options) cacheKey(data []byte) string {
	return cache.Key("set", cache.Hash(data), o.Format, o.Fields, o.Bins.String())
}

// Import reads path with opts and returns the histogram set.
// The path "-" reads standard input.
func Import(ctx context.Context, path string, opts Options) (hist.Set, error) {
	hooks := observability.Input()
	data, err := readAll(path, opts.Stdin)
	if err != nil {
		hooks.OnImportError(ctx, path, err)
		return hist.Set{}, err
	}
	if opts.Cache != nil {
		if c, ok := loadCached(ctx, opts.Cache, opts.cacheKey(data)); ok {
			hooks.OnImport(ctx, path, string(c.Format), len(c.Set.Series))
			return c.Set, nil
		}
	}
	set, format, err := Decode(data, opts)
	if err != nil {
		hooks.OnImportError(ctx, path, err)
		return hist.Set{}, fmt.Errorf("%s: %w", displayName(path), err)
	}
	if opts.Cache != nil {
		storeCached(ctx, opts.Cache, opts.cacheKey(data), cachedSet{Format: format, Set: set}, opts.CacheTTL)
	}
	hooks.OnImport(ctx, path, string(format), len(set.Series))
	return set, nil
}

// loadCached reports a miss for unreadable entries.
func loadCached(ctx context.Context, c cache.Cache, key string) (cachedSet, bool) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return cachedSet{}, false
	}
	var v cachedSet
	if err := json.Unmarshal(data, &v); err != nil {
		return cachedSet{}, false
	}
	return v, true
}

// storeCached drops the entry when the cache cannot take it.
func storeCached(ctx context.Context, c cache.Cache, key string, v cachedSet, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	_ = c.Set(ctx, key, data, ttl)
}

// Decode parses data in the format given by opts, sniffing when it is
// FormatAuto. It returns the format that succeeded.
func Decode(data []byte, opts Options) (hist.Set, Format, error) {
	switch opts.Format {
	case FormatJSON:
		set, err := decodeJSON(data, opts.Fields)
		return set, FormatJSON, err
	case FormatTable:
		set, err := decodeColumns(ReadTable, data, opts)
		return set, FormatTable, err
	case FormatCSV:
		set, err := decodeColumns(ReadCSV, data, opts)
		return set, FormatCSV, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return hist.Set{}, FormatAuto, errors.New(errors.ErrCodeInvalidInput, "input is empty")
	}
	if trimmed[0] == '{' {
		set, err := decodeJSON(data, opts.Fields)
		return set, FormatJSON, err
	}

	cols, tableErr := ReadTable(bytes.NewReader(data))
	if tableErr == nil {
		set, err := binColumns(cols, opts)
		return set, FormatTable, err
	}
	cols, csvErr := ReadCSV(bytes.NewReader(data))
	if csvErr != nil {
		return hist.Set{}, FormatAuto, errors.Wrap(errors.ErrCodeInvalidInput, csvErr,
			"could not interpret input as table (%s) or csv", errors.UserMessage(tableErr))
	}
	set, err := binColumns(cols, opts)
	return set, FormatCSV, err
}

// ReadJSON decodes a pre-binned set from r. The set is not validated;
// rendering does that.
func ReadJSON(r io.Reader) (hist.Set, error) {
	var set hist.Set
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return hist.Set{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return set, nil
}

func decodeJSON(data []byte, fields []string) (hist.Set, error) {
	set, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return hist.Set{}, err
	}
	return selectSeries(set, fields)
}

func decodeColumns(read func(io.Reader) (Columns, error), data []byte, opts Options) (hist.Set, error) {
	cols, err := read(bytes.NewReader(data))
	if err != nil {
		return hist.Set{}, err
	}
	return binColumns(cols, opts)
}

func binColumns(cols Columns, opts Options) (hist.Set, error) {
	cols, err := cols.Select(opts.Fields)
	if err != nil {
		return hist.Set{}, err
	}
	return cols.Histogram(opts.Bins)
}

// selectSeries picks series by label or index.
func selectSeries(set hist.Set, fields []string) (hist.Set, error) {
	if len(fields) == 0 {
		return set, nil
	}
	out := hist.Set{Edges: set.Edges, Series: make([]hist.Series, 0, len(fields))}
	for _, f := range fields {
		if err := errors.ValidateFieldName(f); err != nil {
			return hist.Set{}, err
		}
		i := slices.IndexFunc(set.Series, func(s hist.Series) bool { return s.Label == f })
		if i < 0 {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 || n >= len(set.Series) {
				return hist.Set{}, errors.New(errors.ErrCodeInvalidField, "unknown series %q", f)
			}
			i = n
		}
		out.Series = append(out.Series, set.Series[i])
	}
	return out, nil
}

func readAll(path string, stdin io.Reader) ([]byte, error) {
	if path == Stdin || path == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

func displayName(path string) string {
	if path == Stdin || path == "" {
		return "stdin"
	}
	return path
}
