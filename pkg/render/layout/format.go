package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/histoprint/pkg/render"
)

const (
	// DefaultPrecision is the scientific precision used when none is given.
	DefaultPrecision = 2

	// maxPrecision bounds automatic precision search.
	maxPrecision = 6

	// Thresholds for switching NotationAuto to scientific.
	sciUpper = 1e5
	sciLower = 1e-3
	sciRange = 1e4
)

// ChooseNotation resolves NotationAuto for values. Scientific notation is
// used when the largest magnitude reaches 1e5, the smallest nonzero
// magnitude drops below 1e-3, or their ratio reaches 1e4.
func ChooseNotation(values []float64) render.Notation {
	maxAbs, minAbs := 0.0, math.Inf(1)
	for _, v := range values {
		a := math.Abs(v)
		maxAbs = max(maxAbs, a)
		if a > 0 {
			minAbs = min(minAbs, a)
		}
	}
	if math.IsInf(minAbs, 1) {
		return render.NotationFixed
	}
	if maxAbs >= sciUpper || minAbs < sciLower || maxAbs/minAbs >= sciRange {
		return render.NotationScientific
	}
	return render.NotationFixed
}

// FormatEdges formats values as axis labels of identical display width.
//
// Notation NotationAuto is resolved with [ChooseNotation]. A negative
// precision selects the smallest precision (scientific starts at
// [DefaultPrecision], fixed at zero) for which all labels are distinct.
// The resolved notation and precision are returned with the labels.
func FormatEdges(values []float64, notation render.Notation, precision int) ([]string, render.Notation, int) {
	if notation == render.NotationAuto {
		notation = ChooseNotation(values)
	}
	if precision < 0 {
		start := 0
		if notation == render.NotationScientific {
			start = DefaultPrecision
		}
		precision = maxPrecision
		for p := start; p <= maxPrecision; p++ {
			if distinct(formatAll(values, notation, p)) {
				precision = p
				break
			}
		}
	}
	return pad(formatAll(values, notation, precision)), notation, precision
}

// FormatValue formats a single number the way axis labels are formatted.
func FormatValue(v float64, notation render.Notation, precision int) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	if notation == render.NotationScientific {
		return fmt.Sprintf("% .*e", precision, v)
	}
	return fmt.Sprintf("% .*f", precision, v)
}

func formatAll(values []float64, notation render.Notation, precision int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v, notation, precision)
	}
	return out
}

func distinct(labels []string) bool {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}

// pad right-aligns labels to the widest one.
func pad(labels []string) []string {
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, l := range labels {
		if w := runewidth.StringWidth(l); w < width {
			labels[i] = strings.Repeat(" ", width-w) + l
		}
	}
	return labels
}
