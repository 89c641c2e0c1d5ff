package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Metric colors
	MetricCE = lipgloss.Color("#6366F1") // Indigo
	MetricCU = lipgloss.Color("#8B5CF6") // Violet
	MetricPC = lipgloss.Color("#EC4899") // Pink
	MetricPQ = lipgloss.Color("#F97316") // Orange

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Table styles
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	SortedHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning)

	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowMarked = lipgloss.NewStyle().
			Foreground(Warning)

	RowUnscored = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Selection indicators
	MarkActive   = "● "
	MarkInactive = "  "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Run status styles
	StatusSucceeded = lipgloss.NewStyle().
			Foreground(Secondary)

	StatusSkipped = lipgloss.NewStyle().
			Foreground(Muted)

	StatusFailed = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	StatusPending = lipgloss.NewStyle().
			Foreground(Warning)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// MetricColor returns the color for a metric column header
func MetricColor(metric string) lipgloss.Color {
	switch metric {
	case "CE":
		return MetricCE
	case "CU":
		return MetricCU
	case "PC":
		return MetricPC
	case "PQ":
		return MetricPQ
	default:
		return Primary
	}
}
