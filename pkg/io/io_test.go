package io

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/histoprint/pkg/cache"
	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/observability"
)

func TestReadTable(t *testing.T) {
	input := `# x y
1 10
2   20

nan 30
# trailing comment
4 inf
`
	cols, err := ReadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTable() error: %v", err)
	}
	if cols.Len() != 2 || cols.Names != nil {
		t.Fatalf("ReadTable() = %d columns, names %v; want 2, nil", cols.Len(), cols.Names)
	}
	if got := cols.Data[0]; len(got) != 4 || got[0] != 1 || !math.IsNaN(got[2]) || got[3] != 4 {
		t.Errorf("column 0 = %v", got)
	}
	if got := cols.Data[1]; !math.IsInf(got[3], 1) {
		t.Errorf("column 1 = %v, want +Inf last", got)
	}
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ragged", "1 2\n3\n"},
		{"not numeric", "1 2\n3 x\n"},
		{"empty", "# nothing\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadTable() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := "mass, energy\n1.5, 2\n, 4\n3,5\n"
	cols, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if !slices.Equal(cols.Names, []string{"mass", "energy"}) {
		t.Errorf("Names = %v", cols.Names)
	}
	if got := cols.Data[0]; len(got) != 3 || got[0] != 1.5 || !math.IsNaN(got[1]) {
		t.Errorf("column mass = %v", got)
	}
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadCSV(ragged) error = %v, want INVALID_INPUT", err)
	}
}

func TestColumnsSelect(t *testing.T) {
	table := Columns{Data: [][]float64{{1}, {2}, {3}}}
	csv := Columns{Names: []string{"a", "b", "c"}, Data: [][]float64{{1}, {2}, {3}}}

	tests := []struct {
		name    string
		cols    Columns
		fields  []string
		want    []float64
		names   []string
		wantErr bool
	}{
		{name: "all", cols: table, want: []float64{1, 2, 3}},
		{name: "table index", cols: table, fields: []string{"2", "0"}, want: []float64{3, 1}},
		{name: "table name", cols: table, fields: []string{"a"}, wantErr: true},
		{name: "table out of range", cols: table, fields: []string{"3"}, wantErr: true},
		{name: "csv name", cols: csv, fields: []string{"c", "a"}, want: []float64{3, 1}, names: []string{"c", "a"}},
		{name: "csv index", cols: csv, fields: []string{"1"}, want: []float64{2}, names: []string{"b"}},
		{name: "csv unknown", cols: csv, fields: []string{"d"}, wantErr: true},
		{name: "empty field", cols: csv, fields: []string{""}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cols.Select(tt.fields)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidField) {
					t.Errorf("Select() error code = %s, want INVALID_FIELD", errors.GetCode(err))
				}
				return
			}
			var firsts []float64
			for _, d := range got.Data {
				firsts = append(firsts, d[0])
			}
			if !slices.Equal(firsts, tt.want) {
				t.Errorf("Select() = %v, want %v", firsts, tt.want)
			}
			if tt.names != nil && !slices.Equal(got.Names, tt.names) {
				t.Errorf("Select() names = %v, want %v", got.Names, tt.names)
			}
		})
	}
}

func TestParseBinSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    BinSpec
		wantErr bool
	}{
		{in: "", want: BinSpec{}},
		{in: "20", want: BinSpec{Count: 20}},
		{in: "-5 -1 0 1 5", want: BinSpec{Edges: []float64{-5, -1, 0, 1, 5}}},
		{in: "0,0.5,1", want: BinSpec{Edges: []float64{0, 0.5, 1}}},
		{in: "0", wantErr: true},
		{in: "2.5", wantErr: true},
		{in: "1 0", wantErr: true},
		{in: "0 nan", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBinSpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBinSpec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got.Count != tt.want.Count || !slices.Equal(got.Edges, tt.want.Edges) {
				t.Errorf("ParseBinSpec(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBinSpecResolve(t *testing.T) {
	edges, err := BinSpec{Count: 4}.Resolve([]float64{0, 1, math.NaN()}, []float64{2})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := []float64{0, 0.5, 1, 1.5, 2}; !slices.Equal(edges, want) {
		t.Errorf("Resolve() = %v, want %v", edges, want)
	}
	if edges, _ := (BinSpec{}).Resolve([]float64{0, 10}); len(edges) != DefaultBins+1 {
		t.Errorf("Resolve(default) = %d edges, want %d", len(edges), DefaultBins+1)
	}
	if _, err := (BinSpec{Count: 3}).Resolve([]float64{math.NaN()}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resolve(no finite) error = %v, want INVALID_INPUT", err)
	}
	if got := (BinSpec{Edges: []float64{0, 1.5}}).String(); got != "0 1.5" {
		t.Errorf("String() = %q, want %q", got, "0 1.5")
	}
}

func TestDecodeSniffing(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		labels []string
		counts []float64
	}{
		{
			name:   "table",
			input:  "0\n1\n1\n3\n",
			format: FormatTable,
			labels: []string{""},
			counts: []float64{1, 2, 0, 1},
		},
		{
			name:   "csv",
			input:  "x\n0\n1\n1\n3\n",
			format: FormatCSV,
			labels: []string{"x"},
			counts: []float64{1, 2, 0, 1},
		},
		{
			name:   "json",
			input:  `{"edges": [0, 1, 2], "series": [{"label": "A", "counts": [3, 4]}]}`,
			format: FormatJSON,
			labels: []string{"A"},
			counts: []float64{3, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, format, err := Decode([]byte(tt.input), Options{Bins: BinSpec{Count: 4}})
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if format != tt.format {
				t.Errorf("Decode() format = %q, want %q", format, tt.format)
			}
			if !slices.Equal(set.Labels(), tt.labels) {
				t.Errorf("Decode() labels = %q, want %q", set.Labels(), tt.labels)
			}
			if !slices.Equal(set.Series[0].Counts, tt.counts) {
				t.Errorf("Decode() counts = %v, want %v", set.Series[0].Counts, tt.counts)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts Options
		want errors.Code
	}{
		{"empty", "  \n", Options{}, errors.ErrCodeInvalidInput},
		{"garbage", "a b\n\"unterminated\n", Options{}, errors.ErrCodeInvalidInput},
		{"bad json", "{nope", Options{}, errors.ErrCodeInvalidInput},
		{"unknown series", `{"edges":[0,1],"series":[{"label":"A","counts":[1]}]}`, Options{Fields: []string{"B"}}, errors.ErrCodeInvalidField},
		{"forced csv on table", "1 2\n3 4\n", Options{Format: FormatCSV, Fields: []string{"z"}}, errors.ErrCodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.data), tt.opts)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("Decode() error = %v (code %s), want %s", err, got, tt.want)
			}
		})
	}
}

func TestSelectSeries(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{0, 1},
		Series: []hist.Series{{Label: "A", Counts: []float64{1}}, {Label: "B", Counts: []float64{2}}},
	}
	got, err := selectSeries(set, []string{"B", "0"})
	if err != nil {
		t.Fatalf("selectSeries() error: %v", err)
	}
	if want := []string{"B", "A"}; !slices.Equal(got.Labels(), want) {
		t.Errorf("selectSeries() = %v, want %v", got.Labels(), want)
	}
}

type recordingInput struct {
	observability.NoopInputHooks
	format string
	series int
	failed bool
}

func (h *recordingInput) OnImport(_ context.Context, _ string, format string, series int) {
	h.format, h.series = format, series
}

func (h *recordingInput) OnImportError(context.Context, string, error) { h.failed = true }

func TestImport(t *testing.T) {
	hooks := &recordingInput{}
	observability.SetInputHooks(hooks)
	defer observability.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Import(context.Background(), path, Options{Fields: []string{"b"}, Bins: BinSpec{Count: 2}})
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !slices.Equal(set.Labels(), []string{"b"}) || !slices.Equal(set.Edges, []float64{2, 2.5, 3}) {
		t.Errorf("Import() = %+v", set)
	}
	if hooks.format != "csv" || hooks.series != 1 {
		t.Errorf("OnImport(format=%q, series=%d), want csv, 1", hooks.format, hooks.series)
	}

	_, err = Import(context.Background(), filepath.Join(dir, "missing.txt"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if !hooks.failed {
		t.Error("OnImportError not called")
	}
}

func TestImportCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Bins: BinSpec{Count: 2}, Cache: c, Stdin: strings.NewReader("1\n2\n3\n")}
	first, err := Import(ctx, Stdin, opts)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	hooks := &recordingInput{}
	observability.SetInputHooks(hooks)
	defer observability.Reset()

	opts.Stdin = strings.NewReader("1\n2\n3\n")
	second, err := Import(ctx, Stdin, opts)
	if err != nil {
		t.Fatalf("Import() from cache error: %v", err)
	}
	if !slices.Equal(first.Edges, second.Edges) || !slices.Equal(first.Series[0].Counts, second.Series[0].Counts) {
		t.Errorf("cached set = %+v, want %+v", second, first)
	}
	if hooks.format != "table" {
		t.Errorf("OnImport(format=%q) for cached set, want table", hooks.format)
	}

	opts.Stdin = strings.NewReader("1\n2\n3\n")
	opts.Bins = BinSpec{Count: 3}
	third, err := Import(ctx, Stdin, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(third.Edges) != 4 {
		t.Errorf("changed bins reused cached entry: edges %v", third.Edges)
	}
}

func TestImportStdin(t *testing.T) {
	set, err := Import(context.Background(), Stdin, Options{Stdin: strings.NewReader("1 5\n2 6\n")})
	if err != nil {
		t.Fatalf("Import(stdin) error: %v", err)
	}
	if len(set.Series) != 2 {
		t.Errorf("Import(stdin) = %d series, want 2", len(set.Series))
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{0, 0.5, 1},
		Series: []hist.Series{{Label: "A", Counts: []float64{1, 2}}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(set, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !slices.Equal(got.Edges, set.Edges) || got.Series[0].Label != "A" || !slices.Equal(got.Series[0].Counts, set.Series[0].Counts) {
		t.Errorf("round trip = %+v, want %+v", got, set)
	}
}

func TestExportJSON(t *testing.T) {
	set := hist.Set{
		Edges:  []float64{1, 2, 4},
		Series: []hist.Series{{Label: "x", Counts: []float64{3, 1}}, {Label: "y", Counts: []float64{0, 2}}},
	}
	path := filepath.Join(t.TempDir(), "set.json")
	if err := ExportJSON(set, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := Import(context.Background(), path, Options{Fields: []string{"y"}})
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !slices.Equal(got.Labels(), []string{"y"}) || !slices.Equal(got.Series[0].Counts, []float64{0, 2}) {
		t.Errorf("Import(exported) = %+v", got)
	}

	if err := ExportJSON(set, filepath.Join(t.TempDir(), "missing", "set.json")); err == nil {
		t.Error("ExportJSON() into a missing directory succeeded")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "TXT": FormatTable, "csv": FormatCSV, "json": FormatJSON} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("root"); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("ParseFormat(root) error = %v, want CONFIGURATION", err)
	}
}
