package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/tui/styles"
	"audiorev/internal/application"
)

// DiagnosticsKeyMap defines key bindings for the diagnostics view
type DiagnosticsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

var DiagnosticsKeys = DiagnosticsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "d"),
		key.WithHelp("esc", "close"),
	),
}

const diagnosticsPageSize = 20

// DiagnosticsModel lists the directory-level problems from the last load.
type DiagnosticsModel struct {
	ViewState
	session *application.Session
	pager   *Paginator
}

// NewDiagnosticsModel creates a new diagnostics view model
func NewDiagnosticsModel(session *application.Session) *DiagnosticsModel {
	return &DiagnosticsModel{
		session: session,
		pager:   NewPaginator(diagnosticsPageSize),
	}
}

// Init initializes the diagnostics view
func (m *DiagnosticsModel) Init() tea.Cmd {
	m.pager.Reset()
	m.pager.SetTotal(len(m.session.Diagnostics()))
	return nil
}

// Update handles messages for the diagnostics view
func (m *DiagnosticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DiagnosticsKeys.Close):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		case key.Matches(msg, DiagnosticsKeys.Up):
			m.pager.CursorUp()
			return m, nil
		case key.Matches(msg, DiagnosticsKeys.Down):
			m.pager.CursorDown()
			return m, nil
		}
	}

	return m, nil
}

// View renders the diagnostics view
func (m *DiagnosticsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Diagnostics"))
	b.WriteString("\n\n")

	diags := m.session.Diagnostics()
	if len(diags) == 0 {
		b.WriteString(styles.Success.Render("No problems found"))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d directories with problems", len(diags))))
		b.WriteString("\n\n")

		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			line := diags[i].String()
			if i == m.pager.Cursor() {
				b.WriteString(styles.RowSelected.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}

		if m.pager.TotalPages() > 1 {
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("j/k"), styles.HelpDesc.Render("navigate"),
		styles.HelpKey.Render("esc"), styles.HelpDesc.Render("close"),
	))

	return styles.App.Render(b.String())
}
