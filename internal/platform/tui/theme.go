package tui

import "github.com/charmbracelet/lipgloss"

// Theme contains the viewer chrome styles. The grid itself is styled by the
// render package.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Border  lipgloss.Style
	Prompt  lipgloss.Style
	Subtle  lipgloss.Style
	Settled lipgloss.Style
	Aborted lipgloss.Style
}

// NewTheme builds the theme for r. nil selects the default renderer.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		Status:  r.NewStyle().Foreground(lipgloss.Color("46")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Help:    r.NewStyle().Foreground(lipgloss.Color("241")),
		Border:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Prompt:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtle:  r.NewStyle().Foreground(lipgloss.Color("238")),
		Settled: r.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Aborted: r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	}
}

// stateStyle picks the style for a state label.
func (t Theme) stateStyle(done, settled bool) lipgloss.Style {
	switch {
	case settled:
		return t.Settled
	case done:
		return t.Aborted
	default:
		return t.Value
	}
}
