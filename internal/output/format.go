// Package output provides terminal formatting and display utilities.
package output

import (
	"fmt"
	"os"
	"strings"
)

// ANSI color codes
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Blue      = "\033[34m"
	Magenta   = "\033[35m"
	Cyan      = "\033[36m"
	White     = "\033[37m"
	BoldRed   = "\033[1;31m"
	BoldGreen = "\033[1;32m"
)

var useColor = true

// DisableColor disables colored output.
func DisableColor() {
	useColor = false
}

// EnableColor enables colored output.
func EnableColor() {
	useColor = true
}

// IsColorEnabled returns whether color output is enabled.
func IsColorEnabled() bool {
	return useColor && isTerminal()
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Color applies a color to text if color is enabled.
func Color(text, color string) string {
	if !IsColorEnabled() {
		return text
	}
	return color + text + Reset
}

// categoryColors cycles through distinct terminal colors for categories.
var categoryColors = []string{Blue, Magenta, Cyan, Yellow, Green, Red}

// CategoryColor returns the color for the i-th category; a negative index
// means uncategorized.
func CategoryColor(i int) string {
	if i < 0 {
		return White
	}
	return categoryColors[i%len(categoryColors)]
}

// CompletionColor returns the color for a completion percentage.
func CompletionColor(percent float64) string {
	switch {
	case percent >= 100:
		return BoldGreen
	case percent >= 50:
		return Green
	case percent > 0:
		return Yellow
	default:
		return Red
	}
}

// ProgressBar creates a visual progress bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	// Color the bar based on completion
	var color string
	switch {
	case percent >= 80:
		color = Green
	case percent >= 50:
		color = Yellow
	default:
		color = Red
	}

	return Color("["+bar+"]", color)
}

// Header creates a formatted header line.
func Header(text string, width int) string {
	padding := (width - len(text) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	line := strings.Repeat("=", padding) + " " + text + " " + strings.Repeat("=", padding)
	// Ensure exact width
	for len(line) < width {
		line += "="
	}
	return Color(line, Bold)
}

// SubHeader creates a formatted subheader line.
func SubHeader(text string, width int) string {
	padding := (width - len(text) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	line := strings.Repeat("-", padding) + " " + text + " " + strings.Repeat("-", padding)
	for len(line) < width {
		line += "-"
	}
	return Color(line, Dim)
}

// Checkmark returns a colored checkmark or X.
func Checkmark(ok bool) string {
	if ok {
		return Color("✓", Green)
	}
	return Color("✗", Red)
}

// SpanBar draws a bar of length cells starting at offset within width cells.
// Cells outside the bar are drawn with the track character.
func SpanBar(offset, length, width int, fill, track string) string {
	if width <= 0 {
		return ""
	}
	if offset < 0 {
		length += offset
		offset = 0
	}
	if offset > width {
		offset = width
	}
	if length < 0 {
		length = 0
	}
	if offset+length > width {
		length = width - offset
	}
	return strings.Repeat(track, offset) + strings.Repeat(fill, length) + strings.Repeat(track, width-offset-length)
}

// FormatPercent formats a percentage with color.
func FormatPercent(percent float64) string {
	text := fmt.Sprintf("%.1f%%", percent)
	var color string
	switch {
	case percent >= 80:
		color = Green
	case percent >= 50:
		color = Yellow
	default:
		color = Red
	}
	return Color(text, color)
}

// Truncate truncates text to a maximum width with ellipsis.
func Truncate(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// PadRight pads text to a minimum width.
func PadRight(text string, width int) string {
	w := displayWidth(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}
