// Package cli implements the histoprint command-line interface.
//
// The root command reads a file (or stdin), bins its columns and prints the
// histograms. Flags override an optional TOML config file. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The commands are:
//   - histoprint [file]: print histograms to stdout
//   - view: full-screen viewer that re-renders on resize
//   - config: print the effective configuration
//   - cache: clear or locate the cache of binned input
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes per-stage render timings. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/matzehuels/histoprint/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with short wall-clock timestamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports the duration of one command step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time in milliseconds,
// e.g. "Rendered 2 series in 20 rows (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() for contexts that never passed through it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
