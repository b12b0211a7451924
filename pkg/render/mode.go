package render

import (
	"strings"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// Mode selects how multiple series share a row.
type Mode int

const (
	// Overlay draws each series independently from column zero.
	Overlay Mode = iota
	// Stack draws series after one another using cumulative counts.
	Stack
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m == Stack {
		return "stack"
	}
	return "overlay"
}

// ParseMode parses "overlay" or "stack" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overlay":
		return Overlay, nil
	case "stack":
		return Stack, nil
	}
	return Overlay, errors.Configuration("unknown mode %q (must be overlay or stack)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Notation selects how bin edges are printed on the axis.
type Notation int

const (
	// NotationAuto picks scientific notation for wide dynamic ranges and
	// fixed-point otherwise.
	NotationAuto Notation = iota
	NotationFixed
	NotationScientific
)

// String returns the lowercase notation name.
func (n Notation) String() string {
	switch n {
	case NotationFixed:
		return "fixed"
	case NotationScientific:
		return "scientific"
	}
	return "auto"
}

// ParseNotation parses "auto", "fixed" or "scientific" (case-insensitive).
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return NotationAuto, nil
	case "fixed":
		return NotationFixed, nil
	case "scientific", "sci":
		return NotationScientific, nil
	}
	return NotationAuto, errors.Configuration("unknown notation %q (must be auto, fixed or scientific)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (n Notation) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Notation) UnmarshalText(b []byte) error {
	v, err := ParseNotation(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
