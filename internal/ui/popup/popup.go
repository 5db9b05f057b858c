package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/audiobook/internal/ui/styles"
)

// Box wraps content in a rounded, titled border. width is the outer width;
// 0 fits the content.
func Box(title, content, footer string, width int) string {
	t := styles.T()

	var lines []string
	if title != "" {
		lines = append(lines, t.S().Title.Render(title), "")
	}
	lines = append(lines, content)
	if footer != "" {
		lines = append(lines, "", t.S().Subtle.Render(footer))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Compose draws box centered over base. Base lines are padded to width;
// cells outside the box keep the base content, styles included.
func Compose(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")

	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	top := max((len(baseLines)-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, overlay := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = splice(baseLines[row], overlay, left, boxWidth, width)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces columns [left, left+span) of line with overlay.
func splice(line, overlay string, left, span, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	prefix := ansi.Truncate(line, left, "")
	// A wide rune straddling the cut is dropped; pad to keep alignment.
	if w := ansi.StringWidth(prefix); w < left {
		prefix += strings.Repeat(" ", left-w)
	}

	if w := ansi.StringWidth(overlay); w < span {
		overlay += strings.Repeat(" ", span-w)
	}

	end := left + span
	suffix := ""
	if end < width {
		suffix = ansi.Cut(line, end, width)
		if w := ansi.StringWidth(suffix); w < width-end {
			suffix = strings.Repeat(" ", width-end-w) + suffix
		}
	}
	return prefix + overlay + suffix
}
