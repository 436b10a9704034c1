package tui

import "github.com/charmbracelet/lipgloss"

// Palette used by the todo list.
var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorDim     = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorBorder  = lipgloss.Color("#3b4261")
)

// Styles holds the pre-computed styles of the todo list.
type Styles struct {
	Title     lipgloss.Style
	Input     lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Empty     lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginBottom(1),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Padding(0, 2),

		Selected: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 2).
			Bold(true),

		Completed: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Strikethrough(true),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 2),
	}
}
