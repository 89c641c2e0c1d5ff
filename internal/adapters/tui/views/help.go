package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("AudioREV Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Audio Review Dataset Browser"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Records"))
	b.WriteString("\n")
	b.WriteString(helpLine("space", "Mark/unmark record"))
	b.WriteString(helpLine("a / A", "Mark all visible / clear marks"))
	b.WriteString(helpLine("enter", "Play record"))
	b.WriteString(helpLine("c", "Copy path to clipboard"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Dataset"))
	b.WriteString("\n")
	b.WriteString(helpLine("/", "Filter records"))
	b.WriteString(helpLine("s / o", "Cycle sort column / reverse direction"))
	b.WriteString(helpLine("d", "Show manifest diagnostics"))
	b.WriteString(helpLine("p", "Preprocess (score) directories"))
	b.WriteString(helpLine("e", "Export marked records"))
	b.WriteString(helpLine("r", "Reload manifests from disk"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Metrics"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  CE : Content Enjoyment"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  CU : Content Usefulness"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  PC : Production Complexity"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  PQ : Production Quality"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
