// Package style defines the color and symbol vocabulary shared by the
// histogram renderer.
//
// # Colors
//
// A [Color] is a terminal-agnostic color spec. The compact single-letter
// codes follow the classic eight-color terminal palette:
//
//	0          default foreground / transparent background
//	k r g y b m c w   black, red, green, yellow, blue, magenta, cyan, white
//	K R G Y B M C W   bright variants
//
// ANSI-256 indices ("@123" or any number with two or more digits) and
// "#rrggbb" hex strings are also accepted; translating them into escape
// sequences is the job of a sink.
//
// # Palettes
//
// A [Palette] assigns a symbol, foreground, and background to every series.
// Shorter sequences cycle: series i uses element i mod len. Empty sequences
// fall back to a blank symbol and default colors, so a palette lookup never
// fails.
package style
