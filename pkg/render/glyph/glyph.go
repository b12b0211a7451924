// Package glyph encodes composed cells as runes.
//
// An [Encoding] turns one [compose.Cell] into a base rune followed by zero
// or more zero-width combining runes, each with its own colors. [Unicode]
// draws cross-series and fractional marks as combining characters; [ASCII]
// drops every mark for terminals that cannot compose them.
package glyph

import (
	"github.com/matzehuels/histoprint/pkg/render/compose"
	"github.com/matzehuels/histoprint/pkg/render/style"
)

// Combining runes used by the Unicode encoding.
const (
	// Joiner is the combining grapheme joiner. It is appended to unmarked
	// glyphs so they render like glyphs that carry a mark.
	Joiner rune = '\u034f'

	// FractionalMark is drawn where a series ends inside a cell.
	FractionalMark rune = '\u0323'

	// defaultMark draws symbols without a dedicated combining form.
	defaultMark rune = '\u20d2'
)

// Glyph is one rune with its colors. Only the first glyph of a cell has
// display width; the rest are combining.
type Glyph struct {
	R      rune
	FG, BG style.Color
}

// Encoding maps composed cells to glyphs.
type Encoding interface {
	Name() string

	// Combining reports whether Encode draws the marks of a cell. Cells
	// for encodings that do not must be composed without marks, so the
	// last covering series is the one shown.
	Combining() bool

	Encode(c compose.Cell) []Glyph
}

// Unicode substitutes box-drawing runes for base symbols and draws marks
// as combining characters.
var Unicode Encoding = unicodeEncoding{}

// Box substitutes box-drawing runes like Unicode but emits no combining
// runes at all, for terminals that cannot compose them.
var Box Encoding = boxEncoding{}

// ASCII keeps base symbols as given and drops all marks.
var ASCII Encoding = asciiEncoding{}

var baseRunes = map[rune]rune{
	'|': '│',
	'=': '═',
	'-': '─',
	'#': '╪',
}

var markRunes = map[rune]rune{
	'/':  '\u20eb',
	'\\': '\u20e5',
	'|':  '\u20d2',
	'-':  '\u0336',
	'=':  '\u0333',
	'_':  '\u0332',
	'~':  '\u0334',
}

// MarkRune returns the combining form of symbol. Spaces have none.
func MarkRune(symbol rune) (rune, bool) {
	if symbol == ' ' {
		return 0, false
	}
	if r, ok := markRunes[symbol]; ok {
		return r, true
	}
	return defaultMark, true
}

// BaseRune returns the display form of symbol.
func BaseRune(symbol rune) rune {
	if r, ok := baseRunes[symbol]; ok {
		return r
	}
	return symbol
}

type unicodeEncoding struct{}

func (unicodeEncoding) Name() string    { return "unicode" }
func (unicodeEncoding) Combining() bool { return true }

func (unicodeEncoding) Encode(c compose.Cell) []Glyph {
	out := make([]Glyph, 1, 1+len(c.Marks))
	out[0] = Glyph{R: BaseRune(c.Base), FG: c.FG, BG: c.BG}

	// Overlaid slashes are drawn on top of a space rather than as a base.
	if _, composing := composingBase[c.Base]; composing && c.Covered() {
		out[0].R = ' '
		out = append(out, Glyph{R: markRunes[c.Base], FG: c.FG, BG: c.BG})
	}

	for _, m := range c.Marks {
		r, ok := MarkRune(m.Glyph)
		if m.Kind == compose.Fractional {
			r, ok = FractionalMark, true
		}
		if ok {
			out = append(out, Glyph{R: r, FG: m.FG, BG: c.BG})
		}
	}
	if len(out) == 1 && c.Base != ' ' {
		out = append(out, Glyph{R: Joiner, FG: c.FG, BG: c.BG})
	}
	return out
}

// composingBase holds symbols that are always drawn as combining marks,
// even as the first series in a cell.
var composingBase = map[rune]struct{}{
	'/':  {},
	'\\': {},
}

type boxEncoding struct{}

func (boxEncoding) Name() string    { return "box" }
func (boxEncoding) Combining() bool { return false }

func (boxEncoding) Encode(c compose.Cell) []Glyph {
	return []Glyph{{R: BaseRune(c.Base), FG: c.FG, BG: c.BG}}
}

type asciiEncoding struct{}

func (asciiEncoding) Name() string    { return "ascii" }
func (asciiEncoding) Combining() bool { return false }

func (asciiEncoding) Encode(c compose.Cell) []Glyph {
	return []Glyph{{R: c.Base, FG: c.FG, BG: c.BG}}
}

// Names lists the encodings accepted by [ByName].
var Names = []string{"unicode", "box", "ascii"}

// ByName returns the encoding called name. The empty name is Unicode.
func ByName(name string) (Encoding, bool) {
	switch name {
	case "unicode", "":
		return Unicode, true
	case "box":
		return Box, true
	case "ascii":
		return ASCII, true
	}
	return nil, false
}

// Fill runes for [WithFill].
const (
	BlockFill rune = '█'
	HashFill  rune = '#'
)

// WithFill wraps enc so that a lone blank glyph on a colored background is
// drawn as fill in the background color. The plot then survives copying
// into a plain text editor and stays visible without color.
func WithFill(enc Encoding, fill rune) Encoding {
	return fillEncoding{Encoding: enc, fill: fill}
}

type fillEncoding struct {
	Encoding
	fill rune
}

func (f fillEncoding) Encode(c compose.Cell) []Glyph {
	out := f.Encoding.Encode(c)
	if len(out) == 1 && out[0].R == ' ' && !out[0].BG.IsDefault() {
		out[0] = Glyph{R: f.fill, FG: out[0].BG, BG: out[0].BG}
	}
	return out
}
