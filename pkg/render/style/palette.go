package style

// Symbol and color cycles used when the caller does not provide any.
const (
	DefaultSymbols  = " |=/\\"
	DefaultFGColors = "WWWWW"
	DefaultBGColors = "K0000"
)

// Palette assigns symbols and colors to series by cycling its sequences.
type Palette struct {
	Symbols []rune
	FG      []Color
	BG      []Color
}

// NewPalette builds a palette from a symbol string and color cycles.
func NewPalette(symbols string, fg, bg []Color) Palette {
	return Palette{Symbols: []rune(symbols), FG: fg, BG: bg}
}

// DefaultPalette returns the built-in symbol and color cycles.
func DefaultPalette() Palette {
	fg, _ := ParseColors(DefaultFGColors)
	bg, _ := ParseColors(DefaultBGColors)
	return NewPalette(DefaultSymbols, fg, bg)
}

// Symbol returns the glyph for series i.
func (p Palette) Symbol(i int) rune {
	if len(p.Symbols) == 0 {
		return ' '
	}
	return p.Symbols[cycle(i, len(p.Symbols))]
}

// Foreground returns the foreground color for series i.
func (p Palette) Foreground(i int) Color {
	if len(p.FG) == 0 {
		return Default
	}
	return p.FG[cycle(i, len(p.FG))]
}

// Background returns the background color for series i.
func (p Palette) Background(i int) Color {
	if len(p.BG) == 0 {
		return Default
	}
	return p.BG[cycle(i, len(p.BG))]
}

// UsesColor reports whether any of the first n series has a non-default color.
func (p Palette) UsesColor(n int) bool {
	for i := 0; i < n; i++ {
		if !p.Foreground(i).IsDefault() || !p.Background(i).IsDefault() {
			return true
		}
	}
	return false
}

func cycle(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
