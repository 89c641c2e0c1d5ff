package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/export"
	"audiorev/internal/adapters/tui/styles"
	"audiorev/internal/application"
)

// ExportModel asks for an output path and writes the marked records (or
// the whole view when nothing is marked). The extension picks the format:
// .txt or .jsonl for a path list, .db for a SQLite database.
type ExportModel struct {
	ViewState
	session *application.Session
	form    *InputForm
}

// NewExportModel creates a new export view model
func NewExportModel(session *application.Session) *ExportModel {
	return &ExportModel{
		session: session,
		form:    NewInputForm(NewInputField("Output file", "selection.jsonl", 200)),
	}
}

// Init initializes the export view
func (m *ExportModel) Init() tea.Cmd {
	m.ClearMessage()
	return m.form.Init()
}

// Update handles messages for the export view
func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, m.form.Keys.Submit):
			if err := m.export(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *ExportModel) export() error {
	outPath := m.form.Value(0)
	if outPath == "" {
		return fmt.Errorf("output file is required")
	}

	records := m.session.SelectedRecords()
	if len(records) == 0 {
		records = m.session.View().Records
	}

	ext := strings.ToLower(filepath.Ext(outPath))
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		return export.WriteSQLite(outPath, records)
	default:
		format, err := export.ParseFormat(ext)
		if err != nil {
			return err
		}
		paths := make([]string, 0, len(records))
		for _, r := range records {
			paths = append(paths, r.Path)
		}
		return export.WriteList(outPath, format, paths)
	}
}

// View renders the export view
func (m *ExportModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Export"))
	b.WriteString("\n\n")

	count := m.session.SelectionCount()
	if count == 0 {
		count = m.session.View().Len()
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Nothing marked, exporting all %d visible records", count)))
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Exporting %d marked records", count)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Formats: .txt (paths), .jsonl (path objects), .db (SQLite)"))
	b.WriteString("\n\n")

	if m.Message != "" && m.MessageErr {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("export"))

	return styles.App.Render(b.String())
}
