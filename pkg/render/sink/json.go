package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/histoprint/pkg/render/grid"
)

// JSONOption configures a [JSON] sink.
type JSONOption func(*JSON)

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(j *JSON) { j.indent = true } }

// WithJSONTitle records the plot title in the output.
func WithJSONTitle(title string) JSONOption { return func(j *JSON) { j.title = title } }

// JSON writes lines and spans as a JSON document.
type JSON struct {
	w      io.Writer
	indent bool
	title  string
}

// NewJSON returns a sink writing JSON to w.
func NewJSON(w io.Writer, opts ...JSONOption) *JSON {
	j := &JSON{w: w}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

type jsonOutput struct {
	Title string     `json:"title,omitempty"`
	Lines []jsonLine `json:"lines"`
}

type jsonLine struct {
	Text  string     `json:"text"`
	Spans []jsonSpan `json:"spans,omitempty"`
}

type jsonSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	FG    string `json:"fg,omitempty"`
	BG    string `json:"bg,omitempty"`
}

func (j *JSON) Write(lines []grid.Line) error {
	out := jsonOutput{Title: j.title, Lines: make([]jsonLine, len(lines))}
	for i, l := range lines {
		jl := jsonLine{Text: l.Text}
		for _, sp := range l.Spans {
			jl.Spans = append(jl.Spans, jsonSpan{Start: sp.Start, End: sp.End, FG: string(sp.FG), BG: string(sp.BG)})
		}
		out.Lines[i] = jl
	}
	enc := json.NewEncoder(j.w)
	if j.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
