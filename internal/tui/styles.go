package tui

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("241")
	subtle = lipgloss.Color("238")
	danger = lipgloss.Color("196")
)

type styles struct {
	Name        lipgloss.Style
	Handle      lipgloss.Style
	Meta        lipgloss.Style
	Section     lipgloss.Style
	SectionOn   lipgloss.Style
	Cell        lipgloss.Style
	CellOn      lipgloss.Style
	Lightbox    lipgloss.Style
	Title       lipgloss.Style
	Counter     lipgloss.Style
	NewsTitle   lipgloss.Style
	NewsTitleOn lipgloss.Style
	NewsDate    lipgloss.Style
	Error       lipgloss.Style
	Empty       lipgloss.Style
	StatusLine  lipgloss.Style
}

func defaultStyles() styles {
	cell := lipgloss.NewStyle().
		Width(cellWidth-2).
		Height(2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtle)

	return styles{
		Name:        lipgloss.NewStyle().Bold(true).Foreground(accent),
		Handle:      lipgloss.NewStyle().Foreground(muted),
		Meta:        lipgloss.NewStyle().Foreground(muted).Italic(true),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(muted).MarginTop(1),
		SectionOn:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		Cell:        cell,
		CellOn:      cell.BorderForeground(accent).Bold(true),
		Lightbox:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
		Title:       lipgloss.NewStyle().Bold(true),
		Counter:     lipgloss.NewStyle().Foreground(muted),
		NewsTitle:   lipgloss.NewStyle().Bold(true),
		NewsTitleOn: lipgloss.NewStyle().Bold(true).Foreground(accent),
		NewsDate:    lipgloss.NewStyle().Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(danger),
		Empty:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		StatusLine:  lipgloss.NewStyle().Foreground(muted),
	}
}
