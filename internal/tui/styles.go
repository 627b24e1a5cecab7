package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the full style set of the annotator view. It is built once and
// passed to the App; nothing mutates it afterwards.
type Styles struct {
	Header    lipgloss.Style
	HeaderApp lipgloss.Style
	Word      lipgloss.Style
	Cursor    lipgloss.Style
	Selection lipgloss.Style
	Unlabeled lipgloss.Style
	Groups    []lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Pending   lipgloss.Style
	Footer    lipgloss.Style

	// WordGap is the number of columns between word blocks.
	WordGap int
}

// DefaultStyles builds styles for the given label groups.
func DefaultStyles(groups []string) Styles {
	accents := GroupAccentColors()
	gs := make([]lipgloss.Style, len(groups))
	for i := range groups {
		gs[i] = lipgloss.NewStyle().Foreground(accents[i%len(accents)])
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 1),
		HeaderApp: lipgloss.NewStyle().Foreground(colorBrand).Bold(true),
		Word:      lipgloss.NewStyle().Foreground(colorText),
		Cursor: lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorCursor).
			Bold(true),
		Selection: lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorSelect),
		Unlabeled: lipgloss.NewStyle().Foreground(colorMuted),
		Groups:    gs,
		Status:    lipgloss.NewStyle().Foreground(colorSuccess),
		StatusErr: lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Pending:   lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0),
		Footer: lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorSurface1),
		WordGap: 2,
	}
}

// Plain returns styles without colors, for tests and dumb terminals.
func Plain(groups []string) Styles {
	gs := make([]lipgloss.Style, len(groups))
	for i := range gs {
		gs[i] = lipgloss.NewStyle()
	}
	plain := lipgloss.NewStyle()
	return Styles{
		Header:    plain,
		HeaderApp: plain,
		Word:      plain,
		Cursor:    plain,
		Selection: plain,
		Unlabeled: plain,
		Groups:    gs,
		Status:    plain,
		StatusErr: plain,
		Pending:   plain,
		Footer:    plain,
		WordGap:   2,
	}
}

func (s Styles) group(i int) lipgloss.Style {
	if i < len(s.Groups) {
		return s.Groups[i]
	}
	return lipgloss.NewStyle()
}
