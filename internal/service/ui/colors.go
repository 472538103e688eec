package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (cyan) for section titles
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// UsageStyle ANSI 2 (green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (bright black) keeps descriptions quiet
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// ErrorStyle ANSI 1 (red) for error lines
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// IncomingStyle ANSI 4 (blue) for messages relayed by the server
	IncomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// Styles decides how console lines are decorated. The zero value
// renders plain text.
type Styles struct {
	Enabled bool
}

func NewStyles(enabled bool) Styles {
	return Styles{Enabled: enabled}
}

func (s Styles) Error(text string) string {
	if !s.Enabled {
		return text
	}
	return ErrorStyle.Render(text)
}

func (s Styles) Incoming(text string) string {
	if !s.Enabled {
		return text
	}
	return IncomingStyle.Render(text)
}
