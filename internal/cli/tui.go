package cli

import (
	"context"
	"fmt"
	stdio "io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/io"
	"github.com/matzehuels/histoprint/pkg/pipeline"
	"github.com/matzehuels/histoprint/pkg/render"
	"github.com/matzehuels/histoprint/pkg/render/sink"
)

// viewStatusLines is the height of the status bar below the plot.
const viewStatusLines = 1

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	flags := &printFlags{}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Show histograms full-screen, re-rendering on resize",
		Long: `view shows the histograms of FILE full-screen and re-renders them whenever
the terminal is resized.

Keys:
  s  toggle stacked mode
  u  toggle summary statistics
  c  toggle combining characters
  q  quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), inputPath(args), cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

// runView imports the input and runs the viewer until the user quits.
func (c *CLI) runView(ctx context.Context, path string, cfg Config) error {
	if c.Terminal == nil || !c.Terminal.IsTerminal() {
		return errors.Configuration("view needs an interactive terminal; use the print command for pipes")
	}
	set, err := c.importSet(ctx, path, cfg)
	if err != nil {
		return err
	}

	m := newViewModel(ctx, set, cfg.Render, c.newRunner(), colorProfile(c.Terminal, cfg.Output.NoColor))
	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen(), tea.WithOutput(c.Stdout)}
	if path == io.Stdin {
		// Data came through stdin; keys have to come from the tty.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(m, progOpts...).Run()
	return err
}

// =============================================================================
// viewModel - Interactive histogram viewer
// =============================================================================

// viewModel is the bubbletea model of the viewer. Every toggle and resize
// renders the whole set again.
type viewModel struct {
	ctx    context.Context
	set    hist.Set
	opts   pipeline.Options
	runner *pipeline.Runner
	ansi   *sink.ANSI

	width, height int
	lines         []string
	err           error
}

func newViewModel(ctx context.Context, set hist.Set, opts pipeline.Options, runner *pipeline.Runner, profile termenv.Profile) viewModel {
	return viewModel{
		ctx:    ctx,
		set:    set,
		opts:   opts,
		runner: runner,
		ansi:   sink.NewANSI(stdio.Discard, sink.WithProfile(profile)),
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			if m.opts.Mode == render.Stack {
				m.opts.Mode = render.Overlay
			} else {
				m.opts.Mode = render.Stack
			}
		case "u":
			m.opts.Summary = !m.opts.Summary
		case "c":
			m.opts.NoCombining = !m.opts.NoCombining
		default:
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	default:
		return m, nil
	}
	m.rerender()
	return m, nil
}

// rerender fills the plot area, leaving room for the status bar.
func (m *viewModel) rerender() {
	if m.width == 0 || m.height == 0 {
		return
	}
	opts := m.opts
	opts.Columns = max(m.width-1, 1)
	opts.Lines = max(m.height-viewStatusLines, 1)

	res, err := m.runner.Render(m.ctx, m.set, opts)
	if err != nil {
		m.lines, m.err = nil, err
		return
	}
	m.err = nil
	m.lines = make([]string, len(res.Lines))
	for i, l := range res.Lines {
		m.lines[i] = m.ansi.Line(l)
	}
}

func (m viewModel) View() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err))
		b.WriteString("\n")
	}
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m viewModel) statusBar() string {
	parts := []string{
		toggle("s stack", m.opts.Mode == render.Stack),
		toggle("u summary", m.opts.Summary),
		toggle("c combining", m.opts.Combining()),
		StyleDim.Render("q quit"),
	}
	if m.width > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%dx%d", m.width, m.height)))
	}
	return strings.Join(parts, StyleDim.Render("  ·  "))
}
