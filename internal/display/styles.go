package display

import "github.com/charmbracelet/lipgloss"

// Styles contains all styling for the table view
type Styles struct {
	Title    lipgloss.Style
	Seat     lipgloss.Style
	SeatTurn lipgloss.Style
	Table    lipgloss.Style
	RedCard  lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Seat: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")),
		SeatTurn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("84")),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(0, 2),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Underline(true),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
