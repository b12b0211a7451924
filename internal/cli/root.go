package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/histoprint/pkg/io"
	"github.com/matzehuels/histoprint/pkg/render"
)

// printFlags holds the flags shared by the print, view and config commands.
// Values only override the config file when the flag was set explicitly.
type printFlags struct {
	config string

	bins   string
	fields []string
	format string
	cache  bool

	title       string
	stack       bool
	summary     bool
	labels      []string
	symbols     string
	fgColors    string
	bgColors    string
	columns     int
	lines       int
	notation    string
	precision   int
	encoding    string
	noCombining bool
	noFill      bool
	noScale     bool
	countLength bool
	uniformRows bool

	output  string
	outFmt  string
	noColor bool
}

// register adds the flags to cmd.
func (f *printFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "config file (default $XDG_CONFIG_HOME/histoprint/config.toml)")

	fs.StringVarP(&f.bins, "bins", "b", "", "number of bins or space-separated bin edges (default 10)")
	fs.StringArrayVarP(&f.fields, "field", "f", nil, "column index or name to histogram (repeatable)")
	fs.StringVar(&f.format, "input-format", "", "input format: auto (default), table, csv, json")
	fs.BoolVar(&f.cache, "cache", false, "reuse binned input from the cache directory")

	fs.StringVarP(&f.title, "title", "t", "", "title of the histogram")
	fs.BoolVar(&f.stack, "stack", false, "stack histograms instead of overlaying them")
	fs.BoolVarP(&f.summary, "summary", "s", false, "print summary statistics")
	fs.StringArrayVarP(&f.labels, "label", "l", nil, "series label (repeatable, cycled)")
	fs.StringVar(&f.symbols, "symbols", "", "symbol cycle (default \" |=/\\\")")
	fs.StringVar(&f.fgColors, "fg-colors", "", "foreground color cycle, e.g. \"WWWWW\" or \"#ff0000,@208\"")
	fs.StringVar(&f.bgColors, "bg-colors", "", "background color cycle, e.g. \"K0000\"")
	fs.IntVarP(&f.columns, "columns", "c", 0, "total width in characters (default terminal width - 1)")
	fs.IntVarP(&f.lines, "lines", "r", 0, "approximate total height in lines (default from width)")
	fs.StringVar(&f.notation, "notation", "", "edge label notation: auto (default), fixed, scientific")
	fs.IntVar(&f.precision, "precision", 0, "decimals of edge labels (default automatic)")
	fs.StringVar(&f.encoding, "encoding", "", "glyph encoding: unicode (default), box, ascii")
	fs.BoolVar(&f.noCombining, "no-combining", false, "disable combining characters; the last series wins overlapping cells")
	fs.BoolVar(&f.noFill, "no-fill", false, "keep blank cells on colored backgrounds")
	fs.BoolVar(&f.noScale, "no-scale", false, "hide the count scale line")
	fs.BoolVar(&f.countLength, "count-length", false, "bar length represents counts instead of bar area")
	fs.BoolVar(&f.uniformRows, "uniform-rows", false, "one row per bin regardless of bin width")

	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fs.StringVar(&f.outFmt, "format", "", "output format: ansi (default), plain, json")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	_ = cmd.RegisterFlagCompletionFunc("input-format", cobra.FixedCompletions(
		append([]string{"auto"}, io.Formats...), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("notation", cobra.FixedCompletions(
		[]string{"auto", "fixed", "scientific"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("encoding", cobra.FixedCompletions(
		[]string{"unicode", "box", "ascii"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		outputFormats, cobra.ShellCompDirectiveNoFileComp))
}

// resolve loads the config file and applies explicitly set flags on top.
func (f *printFlags) resolve(cmd *cobra.Command) (Config, string, error) {
	cfg, path, err := loadConfig(f.config)
	if err != nil {
		return Config{}, path, err
	}
	if err := f.apply(cmd, &cfg); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// apply copies every flag the user set into cfg.
func (f *printFlags) apply(cmd *cobra.Command, cfg *Config) error {
	changed := cmd.Flags().Changed
	r := &cfg.Render

	if changed("bins") {
		cfg.Input.Bins = f.bins
	}
	if changed("field") {
		cfg.Input.Fields = f.fields
	}
	if changed("input-format") {
		cfg.Input.Format = f.format
	}
	if changed("cache") {
		cfg.Input.Cache = f.cache
	}

	if changed("title") {
		r.Title = f.title
	}
	if changed("stack") {
		r.Mode = render.Overlay
		if f.stack {
			r.Mode = render.Stack
		}
	}
	if changed("summary") {
		r.Summary = f.summary
	}
	if changed("label") {
		r.Labels = f.labels
	}
	if changed("symbols") {
		r.Symbols = f.symbols
	}
	if changed("fg-colors") {
		r.FGColors = f.fgColors
	}
	if changed("bg-colors") {
		r.BGColors = f.bgColors
	}
	if changed("columns") {
		r.Columns = f.columns
	}
	if changed("lines") {
		r.Lines = f.lines
	}
	if changed("notation") {
		n, err := render.ParseNotation(f.notation)
		if err != nil {
			return err
		}
		r.Notation = n
	}
	if changed("precision") {
		p := f.precision
		r.Precision = &p
	}
	if changed("encoding") {
		r.Encoding = f.encoding
	}
	if changed("no-combining") {
		r.NoCombining = f.noCombining
	}
	if changed("no-fill") {
		r.NoFill = f.noFill
	}
	if changed("no-scale") {
		r.NoScaleLine = f.noScale
	}
	if changed("count-length") {
		r.CountLength = f.countLength
	}
	if changed("uniform-rows") {
		r.UniformRows = f.uniformRows
	}

	if changed("format") {
		cfg.Output.Format = f.outFmt
	}
	if changed("no-color") {
		cfg.Output.NoColor = f.noColor
	}
	return nil
}
