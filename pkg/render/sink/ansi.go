package sink

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/histoprint/pkg/render/grid"
	"github.com/matzehuels/histoprint/pkg/render/style"
)

// ANSIOption configures an [ANSI] sink.
type ANSIOption func(*ANSI)

// WithProfile forces a color profile instead of detecting it from the
// writer. termenv.Ascii disables color entirely.
func WithProfile(p termenv.Profile) ANSIOption {
	return func(a *ANSI) { a.profile = &p }
}

// ANSI writes lines with terminal color sequences.
type ANSI struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	profile  *termenv.Profile
	styles   map[[2]style.Color]lipgloss.Style
}

// NewANSI returns a sink writing colored output to w.
func NewANSI(w io.Writer, opts ...ANSIOption) *ANSI {
	a := &ANSI{w: w, styles: make(map[[2]style.Color]lipgloss.Style)}
	for _, opt := range opts {
		opt(a)
	}
	a.renderer = lipgloss.NewRenderer(w)
	if a.profile != nil {
		a.renderer.SetColorProfile(*a.profile)
	}
	return a
}

// Profile returns the color profile in use.
func (a *ANSI) Profile() termenv.Profile { return a.renderer.ColorProfile() }

func (a *ANSI) Write(lines []grid.Line) error {
	bw := bufio.NewWriter(a.w)
	for _, l := range lines {
		if _, err := bw.WriteString(a.Line(l)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Line renders one line with color sequences.
func (a *ANSI) Line(l grid.Line) string {
	if len(l.Spans) == 0 {
		return l.Text
	}
	var sb strings.Builder
	for _, seg := range l.Segments() {
		if seg.FG.IsDefault() && seg.BG.IsDefault() {
			sb.WriteString(seg.Text)
			continue
		}
		sb.WriteString(a.style(seg.FG, seg.BG).Render(seg.Text))
	}
	return sb.String()
}

func (a *ANSI) style(fg, bg style.Color) lipgloss.Style {
	key := [2]style.Color{fg, bg}
	if s, ok := a.styles[key]; ok {
		return s
	}
	s := a.renderer.NewStyle()
	if c, ok := Color(fg); ok {
		s = s.Foreground(c)
	}
	if c, ok := Color(bg); ok {
		s = s.Background(c)
	}
	a.styles[key] = s
	return s
}

// Color converts a color spec to a lipgloss color. ok is false for the
// default color and unrecognized specs.
func Color(c style.Color) (lipgloss.Color, bool) {
	if i, ok := c.ANSI(); ok {
		return lipgloss.Color(strconv.Itoa(i)), true
	}
	if h, ok := c.Hex(); ok {
		return lipgloss.Color(h), true
	}
	return "", false
}
