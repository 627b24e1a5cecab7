package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/spantag/internal/annotate"
)

// RenderSentence lays out one block per word (the word above one label line
// per group) left to right, wrapping to width. A width <= 0 never wraps.
func RenderSentence(s Styles, snap annotate.Snapshot, width int) string {
	gap := strings.Repeat(" ", s.WordGap)

	var lines []string
	var line []string
	lineWidth := 0
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
		}
		line, lineWidth = nil, 0
	}

	for i, row := range snap.Rows {
		block := renderBlock(s, snap, i, row)
		w := lipgloss.Width(block)
		if len(line) > 0 && width > 0 && lineWidth+s.WordGap+w > width {
			flush()
		}
		if len(line) > 0 {
			line = append(line, gap)
			lineWidth += s.WordGap
		}
		line = append(line, block)
		lineWidth += w
	}
	flush()
	return strings.Join(lines, "\n\n")
}

func renderBlock(s Styles, snap annotate.Snapshot, i int, row annotate.Row) string {
	cells := make([]string, 0, len(row.Labels)+1)

	word := s.Word
	if snap.Highlighted(i) {
		word = s.Cursor
		if snap.Selecting {
			word = s.Selection
		}
	}
	cells = append(cells, word.Render(row.Word))

	for g, label := range row.Labels {
		if label == annotate.Unlabeled {
			cells = append(cells, s.Unlabeled.Render(label))
			continue
		}
		cells = append(cells, s.group(g).Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cells...)
}

// RenderLegend lists the label groups in their colors.
func RenderLegend(s Styles, groups []string) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = s.group(i).Render(g)
	}
	return strings.Join(parts, "  ")
}

// fit truncates a single line to width.
func fit(line string, width int) string {
	if width <= 0 {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
