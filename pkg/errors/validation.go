package errors

import (
	"unicode"
)

// maxLabelLength bounds series labels and titles. Longer text is almost
// always a mistake (e.g. a whole file passed as a label).
const maxLabelLength = 256

// ValidateLabel validates a title or series label for display.
// Labels end up verbatim in terminal output, so control characters
// (including newlines and escape sequences) would corrupt the layout.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeConfiguration, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateSymbols validates a symbol cycle.
//
// Every symbol must be a single printable, non-combining rune: the renderer
// uses each one both as a base glyph and as the key for its combining form.
// An empty cycle is valid and renders blank bars.
func ValidateSymbols(symbols string) error {
	for _, r := range symbols {
		switch {
		case unicode.IsControl(r):
			return New(ErrCodeConfiguration, "symbol %q is a control character", r)
		case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r):
			return New(ErrCodeConfiguration, "symbol %q is a combining mark", r)
		case !unicode.IsPrint(r):
			return New(ErrCodeConfiguration, "symbol %q is not printable", r)
		}
	}
	return nil
}

// ValidateFieldName validates a column selector given on the command line.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidField, "field name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidField, "field name %q contains control characters", name)
		}
	}
	return nil
}
