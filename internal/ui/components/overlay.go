package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Splice lays overlay over view with its top-left corner at (x, y). The
// view's escape sequences survive on both sides of the overlay.
func Splice(view, overlay string, x, y int) string {
	if overlay == "" {
		return view
	}
	viewLines := strings.Split(view, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for i, overlayLine := range overlayLines {
		row := y + i
		if row < 0 || row >= len(viewLines) {
			continue
		}
		line := viewLines[row]
		width := ansi.StringWidth(line)

		var sb strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(line, x, "")
			sb.WriteString(prefix)
			if pad := x - ansi.StringWidth(prefix); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteString("\x1b[0m")
		sb.WriteString(overlayLine)
		sb.WriteString("\x1b[0m")
		if end := x + ansi.StringWidth(overlayLine); end < width {
			sb.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		viewLines[row] = sb.String()
	}
	return strings.Join(viewLines, "\n")
}
