package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"changeview/diff"
)

var (
	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#874BFD"))
)

// RenderDiff formats compressed diff lines as a dual-column, color-coded
// view: old line number, new line number, change marker, content.
func RenderDiff(lines []diff.Line, tabWidth int) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(renderDiffLine(line, tabWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDiffLine(line diff.Line, tabWidth int) string {
	if line.IsMarker() {
		return markerStyle.Render(fmt.Sprintf("%4s %4s   %s", "", "", line.Content))
	}

	content := line.Content
	if tabWidth > 0 {
		content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
	}

	gutter := gutterStyle.Render(fmt.Sprintf("%4s %4s", lineNumber(line.OldLine), lineNumber(line.NewLine)))
	switch line.Type {
	case diff.LineAdded:
		return gutter + addedStyle.Render(" + "+content)
	case diff.LineRemoved:
		return gutter + removedStyle.Render(" - "+content)
	default:
		return gutter + contextStyle.Render("   "+content)
	}
}

func lineNumber(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
