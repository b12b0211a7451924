package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/hist"
	"github.com/matzehuels/histoprint/pkg/pipeline"
	"github.com/matzehuels/histoprint/pkg/render"
)

type fakeTerminal struct {
	columns, rows int
	tty           bool
}

func (t fakeTerminal) Size() (int, int, error) { return t.columns, t.rows, nil }
func (t fakeTerminal) IsTerminal() bool        { return t.tty }

// newTestCLI returns a CLI reading stdin from input and isolated from any
// user config.
func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	return &CLI{
		Logger:   newLogger(io.Discard, LogInfo),
		Stdin:    strings.NewReader(input),
		Stdout:   &out,
		Terminal: fakeTerminal{columns: 81, rows: 30},
	}, &out
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestPrintPlain(t *testing.T) {
	c, out := newTestCLI(t, "1\n2\n2\n3\n3\n3\n")
	if err := execute(t, c, "-c", "40", "-r", "10", "-b", "3", "--format", "plain", "-t", "demo", "-"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) > 10 {
		t.Errorf("got %d lines, want at most 10:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "demo") {
		t.Errorf("first line = %q, want title", lines[0])
	}
	if !strings.HasSuffix(lines[1], "3╷") {
		t.Errorf("scale line = %q, want peak count 3", lines[1])
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
}

func TestPrintNoTerminalDropsColor(t *testing.T) {
	c, out := newTestCLI(t, "1\n2\n")
	if err := execute(t, c, "-c", "30", "-r", "6", "--fg-colors", "r"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("non-terminal output contains escape sequences:\n%q", out.String())
	}
}

func TestPrintJSON(t *testing.T) {
	c, out := newTestCLI(t, "a,b\n1,2\n2,3\n")
	if err := execute(t, c, "-c", "40", "-r", "12", "--format", "json", "-s", "-f", "b", "-"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	var doc struct {
		Lines []struct {
			Text string `json:"text"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	var legend bool
	for _, l := range doc.Lines {
		if strings.Contains(l.Text, " b") && !strings.Contains(l.Text, "Tot:") {
			legend = true
		}
	}
	if !legend {
		t.Errorf("no legend line with CSV header label in %+v", doc.Lines)
	}
}

func TestPrintOutputFile(t *testing.T) {
	c, out := newTestCLI(t, "1\n2\n")
	path := filepath.Join(t.TempDir(), "hist.txt")
	if err := execute(t, c, "-c", "30", "-r", "6", "-o", path); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "╷") {
		t.Errorf("output file = %q, %v", data, err)
	}
}

func TestPrintErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  errors.Code
	}{
		{"missing file", "", []string{"/does/not/exist.txt"}, errors.ErrCodeFileNotFound},
		{"bad field", "1 2\n", []string{"-f", "7", "-"}, errors.ErrCodeInvalidField},
		{"bad bins", "1\n", []string{"-b", "x", "-"}, errors.ErrCodeConfiguration},
		{"bad notation", "1\n", []string{"--notation", "roman", "-"}, errors.ErrCodeConfiguration},
		{"bad format", "1\n", []string{"--format", "svg", "-"}, errors.ErrCodeConfiguration},
		{"bad colors", "1\n", []string{"--bg-colors", "q", "-"}, errors.ErrCodeConfiguration},
		{"garbage input", "a b\n\"x\n", []string{"-"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t, tt.input)
			err := execute(t, c, tt.args...)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("execute(%v) error = %v (code %s), want %s", tt.args, err, got, tt.want)
			}
		})
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	c, out := newTestCLI(t, "")
	path := filepath.Join(t.TempDir(), "histoprint.toml")
	body := `
[render]
mode = "stack"
summary = true
columns = 60

[input]
bins = "0 1 2"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, c, "config", "--config", path, "-c", "50", "--precision", "3"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	var got Config
	if _, err := toml.Decode(out.String(), &got); err != nil {
		t.Fatalf("config output is not TOML: %v\n%s", err, out.String())
	}
	if got.Render.Mode != render.Stack || !got.Render.Summary {
		t.Errorf("config values lost: mode=%v summary=%v", got.Render.Mode, got.Render.Summary)
	}
	if got.Render.Columns != 50 {
		t.Errorf("columns = %d, want flag value 50", got.Render.Columns)
	}
	if got.Render.Precision == nil || *got.Render.Precision != 3 {
		t.Errorf("precision = %v, want 3", got.Render.Precision)
	}
	if got.Render.Symbols != pipeline.DefaultSymbols {
		t.Errorf("symbols = %q, want default %q", got.Render.Symbols, pipeline.DefaultSymbols)
	}
	if got.Input.Bins != "0 1 2" {
		t.Errorf("bins = %q, want %q", got.Input.Bins, "0 1 2")
	}
}

func TestPrintCache(t *testing.T) {
	c, out := newTestCLI(t, "1\n2\n2\n")
	if err := execute(t, c, "--cache", "--format", "plain", "-c", "30", "-r", "6", "-"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	first := out.String()

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("cache dir has %d entries (%v), want 1", len(entries), err)
	}

	out.Reset()
	c.Stdin = strings.NewReader("1\n2\n2\n")
	if err := execute(t, c, "--cache", "--format", "plain", "-c", "30", "-r", "6", "-"); err != nil {
		t.Fatalf("execute() from cache error: %v", err)
	}
	if out.String() != first {
		t.Errorf("cached render differs:\n%s\nwant:\n%s", out.String(), first)
	}

	out.Reset()
	if err := execute(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[render]\ncolour = \"r\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[render\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want errors.Code
	}{
		{"missing explicit", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"unknown key", unknown, errors.ErrCodeConfiguration},
		{"syntax error", broken, errors.ErrCodeConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(tt.path)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("loadConfig() error = %v (code %s), want %s", err, got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, path, err := loadConfig("")
	if err != nil || path != "" {
		t.Fatalf("loadConfig(\"\") = %q, %v; want no file and no error", path, err)
	}
	if cfg.Render.Summary || cfg.Input.Bins != "" {
		t.Errorf("loadConfig(\"\") = %+v, want zero config", cfg)
	}
}

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name    string
		term    Terminal
		noColor bool
		want    termenv.Profile
	}{
		{"nil terminal", nil, false, termenv.Ascii},
		{"pipe", fakeTerminal{tty: false}, false, termenv.Ascii},
		{"no color flag", fakeTerminal{tty: true}, true, termenv.Ascii},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorProfile(tt.term, tt.noColor); got != tt.want {
				t.Errorf("colorProfile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewRequiresTerminal(t *testing.T) {
	c, _ := newTestCLI(t, "1\n")
	err := execute(t, c, "view", "-")
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("view on a pipe error = %v, want CONFIGURATION", err)
	}
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestViewModel(t *testing.T) {
	set := hist.Set{
		Edges: []float64{0, 1, 2, 3},
		Series: []hist.Series{
			{Label: "A", Counts: []float64{1, 3, 2}},
			{Label: "B", Counts: []float64{2, 1, 0}},
		},
	}
	runner := pipeline.NewRunner(newLogger(io.Discard, LogInfo))
	var m tea.Model = newViewModel(context.Background(), set, pipeline.Options{}, runner, termenv.Ascii)

	if view := m.View(); strings.Contains(view, "╷") {
		t.Errorf("View() before first resize should have no plot, got %q", view)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	vm := m.(viewModel)
	if len(vm.lines) == 0 || len(vm.lines) > 20-viewStatusLines {
		t.Fatalf("rendered %d lines for height 20", len(vm.lines))
	}

	m, _ = m.Update(keyMsg('s'))
	if m.(viewModel).opts.Mode != render.Stack {
		t.Error("'s' did not switch to stack mode")
	}
	m, _ = m.Update(keyMsg('u'))
	if !m.(viewModel).opts.Summary {
		t.Error("'u' did not enable the summary")
	}
	if view := m.View(); !strings.Contains(view, "Tot:") {
		t.Errorf("View() with summary lacks totals:\n%s", view)
	}
	m, _ = m.Update(keyMsg('c'))
	if !m.(viewModel).opts.NoCombining {
		t.Error("'c' did not disable combining")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 3, Height: 20})
	if m.(viewModel).err == nil {
		t.Error("too narrow terminal should report an error")
	}

	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("'q' returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' did not quit")
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c, out := newTestCLI(t, "")
			if err := execute(t, c, "completion", shell); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), "histoprint") {
				t.Errorf("completion %s script does not mention histoprint", shell)
			}
		})
	}

	c, _ := newTestCLI(t, "")
	if err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}

func TestPrintSaveBins(t *testing.T) {
	c, _ := newTestCLI(t, "1\n2\n2\n4\n")
	path := filepath.Join(t.TempDir(), "bins.json")
	if err := execute(t, c, "-b", "0 2 4", "--save-bins", path, "-c", "30", "-r", "6", "-"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var set hist.Set
	if err := json.Unmarshal(data, &set); err != nil {
		t.Fatalf("saved bins are not JSON: %v", err)
	}
	if len(set.Series) != 1 || set.Series[0].Counts[0] != 1 || set.Series[0].Counts[1] != 3 {
		t.Errorf("saved set = %+v, want counts [1 3]", set)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.txt")
	if err := writeOutput(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hist\n")
		return err
	}); err != nil {
		t.Fatalf("writeOutput() error: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "hist\n" {
		t.Errorf("written file = %q, want %q", data, "hist\n")
	}

	failed := stderrors.New("sink failed")
	err := writeOutput(filepath.Join(dir, "fail.txt"), func(io.Writer) error { return failed })
	if !stderrors.Is(err, failed) {
		t.Errorf("writeOutput() error = %v, want write error", err)
	}

	// A file closed behind writeOutput's back makes its own Close fail.
	err = writeOutput(filepath.Join(dir, "closed.txt"), func(w io.Writer) error {
		return w.(*os.File).Close()
	})
	if err == nil || !strings.Contains(err.Error(), "close output") {
		t.Errorf("writeOutput() error = %v, want close error", err)
	}
}
