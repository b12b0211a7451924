package style

import (
	"strconv"
	"strings"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// Color is a color spec understood by every sink. The zero value is the
// terminal default.
type Color string

// Default is the terminal's default foreground, or a transparent background.
const Default Color = ""

// letterCodes maps compact color letters to their ANSI palette index.
var letterCodes = map[byte]int{
	'k': 0, 'r': 1, 'g': 2, 'y': 3, 'b': 4, 'm': 5, 'c': 6, 'w': 7,
	'K': 8, 'R': 9, 'G': 10, 'Y': 11, 'B': 12, 'M': 13, 'C': 14, 'W': 15,
}

// IsDefault reports whether c leaves the terminal color untouched.
func (c Color) IsDefault() bool {
	return c == Default || c == "0"
}

// ANSI returns the ANSI-256 palette index for letter codes and numeric specs.
// ok is false for default and hex colors.
func (c Color) ANSI() (index int, ok bool) {
	s := string(c)
	switch {
	case c.IsDefault():
		return 0, false
	case len(s) == 1:
		idx, found := letterCodes[s[0]]
		return idx, found
	case strings.HasPrefix(s, "@"):
		s = s[1:]
	case strings.HasPrefix(s, "#"):
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return n, true
}

// Hex returns the "#rrggbb" form of a hex color. ok is false otherwise.
func (c Color) Hex() (string, bool) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return "", false
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return "", false
	}
	return strings.ToLower(s), true
}

// Valid reports whether c is a recognized color spec.
func (c Color) Valid() bool {
	if c.IsDefault() {
		return true
	}
	if _, ok := c.ANSI(); ok {
		return true
	}
	_, ok := c.Hex()
	return ok
}

// ParseColors parses a color cycle. A string without separators is read one
// letter per color ("WWK0"); otherwise it is split on commas and whitespace
// ("#ff0000,@208, W").
func ParseColors(s string) ([]Color, error) {
	var tokens []string
	if strings.ContainsAny(s, ", \t") {
		tokens = strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	} else {
		for _, r := range s {
			tokens = append(tokens, string(r))
		}
	}

	colors := make([]Color, 0, len(tokens))
	for _, tok := range tokens {
		c := Color(tok)
		if !c.Valid() {
			return nil, errors.Configuration("unknown color %q (use one of 0rgbcmykwRGBCMYKW, @N or #rrggbb)", tok)
		}
		colors = append(colors, c)
	}
	return colors, nil
}
