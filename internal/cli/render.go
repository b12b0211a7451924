package cli

import (
	"context"
	"fmt"
	stdio "io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/io"
	"github.com/matzehuels/histoprint/pkg/render/sink"
)

const (
	formatANSI  = "ansi"  // colored terminal output
	formatPlain = "plain" // text only
	formatJSON  = "json"  // lines and spans as JSON
)

// outputFormats lists the values accepted by --format.
var outputFormats = []string{formatANSI, formatPlain, formatJSON}

// printCommand creates the root command, which prints a histogram of a file.
func (c *CLI) printCommand() *cobra.Command {
	flags := &printFlags{}
	var saveBins string

	cmd := &cobra.Command{
		Use:   "histoprint [file]",
		Short: "Print histograms of the columns of a file in the terminal",
		Long: `histoprint reads FILE and prints a histogram of the contained columns.

FILE may be a whitespace separated table, a CSV file with a header row, or a
pre-binned JSON histogram set. Use "-" (or no argument) to read stdin.`,
		Example: `  histoprint -b 20 data.txt
  histoprint -f mass -f energy --stack -s events.csv
  seq 100 | histoprint -t "uniform" -`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runPrint(cmd.Context(), inputPath(args), flags.output, saveBins, cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&saveBins, "save-bins", "", "also write the binned input as JSON to this file")
	return cmd
}

// inputPath returns the file argument, defaulting to stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return io.Stdin
	}
	return args[0]
}

// runPrint imports path, renders it and writes the result.
func (c *CLI) runPrint(ctx context.Context, path, output, saveBins string, cfg Config) error {
	logger := loggerFromContext(ctx)

	if err := validateOutputFormat(cfg.Output.Format); err != nil {
		return err
	}
	set, err := c.importSet(ctx, path, cfg)
	if err != nil {
		return err
	}
	if saveBins != "" {
		if err := io.ExportJSON(set, saveBins); err != nil {
			return err
		}
		logger.Info("Saved binned input", "path", saveBins)
	}

	opts := cfg.Render
	opts.Size = sizeFunc(c.Terminal)

	prog := newProgress(logger)
	res, err := c.newRunner().Render(ctx, set, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d series in %d rows", len(set.Series), res.Plan.Rows()))

	if output == "" {
		return c.sinkFor(c.Stdout, cfg.Output, c.Terminal, opts.Title).Write(res.Lines)
	}
	return writeOutput(output, func(w stdio.Writer) error {
		return c.sinkFor(w, cfg.Output, nil, opts.Title).Write(res.Lines)
	})
}

// importSet reads the input, showing a spinner while a slow pipe on stdin
// is drained.
func (c *CLI) importSet(ctx context.Context, path string, cfg Config) (hist.Set, error) {
	opts, err := cfg.importOptions()
	if err != nil {
		return hist.Set{}, err
	}
	opts.Stdin = c.Stdin
	if cfg.Input.Cache {
		if fc, err := openCache(); err == nil {
			opts.Cache = fc
		} else {
			loggerFromContext(ctx).Warn("input cache disabled", "error", err)
		}
	}

	var spin *Spinner
	if path == io.Stdin && c.Terminal != nil && c.Terminal.IsTerminal() && !isTerminalReader(c.Stdin) {
		spin = newSpinnerWithContext(ctx, os.Stderr, "Reading stdin...")
		spin.Start()
		defer spin.Stop()
	}

	set, err := io.Import(ctx, path, opts)
	if spin != nil && spin.Cancelled() {
		return hist.Set{}, ctx.Err()
	}
	if err != nil {
		return hist.Set{}, err
	}
	loggerFromContext(ctx).Debug("imported input", "path", path, "series", len(set.Series), "bins", max(len(set.Edges)-1, 0))
	return set, nil
}

// sinkFor returns the sink for the output settings. A nil terminal means
// output does not go to a terminal.
func (c *CLI) sinkFor(w stdio.Writer, out OutputConfig, t Terminal, title string) sink.Sink {
	switch out.Format {
	case formatPlain:
		return sink.NewPlain(w)
	case formatJSON:
		return sink.NewJSON(w, sink.WithJSONIndent(), sink.WithJSONTitle(title))
	}
	return sink.NewANSI(w, sink.WithProfile(colorProfile(t, out.NoColor)))
}

// validateOutputFormat checks the --format value.
func validateOutputFormat(f string) error {
	if f == "" {
		return nil
	}
	for _, v := range outputFormats {
		if f == v {
			return nil
		}
	}
	return errors.Configuration("invalid output format %q (must be one of: %s)", f, strings.Join(outputFormats, ", "))
}

// writeOutput creates path, runs write on it and reports errors from
// closing the file as well.
func writeOutput(path string, write func(stdio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

// isTerminalReader reports whether r is an interactive terminal.
func isTerminalReader(r stdio.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (fileTerminal{f: f}).IsTerminal()
}
