package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette using ANSI colors for broad terminal compatibility.
var (
	Primary   = lipgloss.Color("4")   // Blue
	Secondary = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
	Success   = lipgloss.Color("2")   // Green
	Warning   = lipgloss.Color("3")   // Yellow
	Error     = lipgloss.Color("1")   // Red
	Highlight = lipgloss.Color("12")  // Bright blue
	Muted     = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
)

// Indicators.
const (
	SuccessIndicator = "✓"
	WarningIndicator = "!"
	DirIndicator     = "▸"
	FileIndicator    = "•"
)

// Styles holds the styles a Reporter renders with. Styles are bound to a
// renderer so color detection follows the reporter's writer, not stdout.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	MutedText   lipgloss.Style
	Dir         lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableFooter lipgloss.Style
	TableBorder lipgloss.Style
}

// NewStyles creates the reporter styles for renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(Primary),

		Label: r.NewStyle().
			Foreground(Secondary).
			Width(10),

		Value: r.NewStyle().
			Foreground(lipgloss.Color("7")),

		SuccessText: r.NewStyle().
			Foreground(Success).
			Bold(true),

		WarningText: r.NewStyle().
			Foreground(Warning),

		MutedText: r.NewStyle().
			Foreground(Muted),

		Dir: r.NewStyle().
			Foreground(Highlight),

		TableHeader: r.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1),

		TableCell: r.NewStyle().
			Padding(0, 1),

		TableFooter: r.NewStyle().
			Bold(true).
			Padding(0, 1),

		TableBorder: r.NewStyle().
			Foreground(Secondary),
	}
}
