package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/histoprint/pkg/errors"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconError = "✗"
	iconOn    = "●"
	iconOff   = "○"
)

// =============================================================================
// Status Output
// =============================================================================

// PrintError writes a user-facing error message to w, followed by the
// cause of a coded error.
func PrintError(w io.Writer, err error) {
	msg := errors.UserMessage(err)
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// toggle renders a labeled on/off indicator.
func toggle(label string, on bool) string {
	if on {
		return StyleHighlight.Render(iconOn) + " " + StyleValue.Render(label)
	}
	return StyleDim.Render(iconOff + " " + label)
}
