package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/tui/styles"
	"audiorev/internal/application/commands"
	"audiorev/internal/ports"
)

// PreprocessKeyMap defines key bindings for the preprocess view
type PreprocessKeyMap struct {
	Start     key.Binding
	Overwrite key.Binding
	Cancel    key.Binding
	Back      key.Binding
}

var PreprocessKeys = PreprocessKeyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter", "start"),
	),
	Overwrite: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "toggle overwrite"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "enter", "q"),
		key.WithHelp("esc", "back"),
	),
}

type preprocessState int

const (
	preprocessIdle preprocessState = iota
	preprocessRunning
	preprocessDone
)

const maxProgressLines = 15

// PreprocessModel drives a scoring run and shows per-directory progress.
// The run executes on its own goroutine; the model receives its events as
// messages, so cancellation stays responsive.
type PreprocessModel struct {
	ViewState
	repo   ports.DatasetRepository
	scorer ports.Scorer
	root   string

	state     preprocessState
	overwrite bool
	cancel    context.CancelFunc
	events    chan tea.Msg

	counts  commands.Counts
	lines   []string
	summary *commands.PreprocessSummary
	runErr  error
}

// NewPreprocessModel creates a new preprocess view model
func NewPreprocessModel(repo ports.DatasetRepository, scorer ports.Scorer, root string) *PreprocessModel {
	return &PreprocessModel{
		repo:   repo,
		scorer: scorer,
		root:   root,
	}
}

// Init initializes the preprocess view
func (m *PreprocessModel) Init() tea.Cmd {
	return nil
}

// Reset returns the view to the idle state, keeping the overwrite toggle.
func (m *PreprocessModel) Reset() {
	m.state = preprocessIdle
	m.counts = commands.Counts{}
	m.lines = nil
	m.summary = nil
	m.runErr = nil
}

type preprocessProgressMsg struct {
	result commands.DirectoryResult
	counts commands.Counts
}

type preprocessDoneMsg struct {
	summary *commands.PreprocessSummary
	err     error
}

// PreprocessFinishedMsg tells the app a run changed files on disk and the
// dataset should be reloaded.
type PreprocessFinishedMsg struct{}

// Update handles messages for the preprocess view
func (m *PreprocessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case preprocessProgressMsg:
		m.counts = msg.counts
		m.lines = append(m.lines, renderProgressLine(msg.result))
		if len(m.lines) > maxProgressLines {
			m.lines = m.lines[len(m.lines)-maxProgressLines:]
		}
		return m, m.waitForEvent

	case preprocessDoneMsg:
		m.state = preprocessDone
		m.summary = msg.summary
		m.runErr = msg.err
		m.cancel = nil
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case preprocessIdle:
			switch {
			case key.Matches(msg, PreprocessKeys.Overwrite):
				m.overwrite = !m.overwrite
				return m, nil
			case key.Matches(msg, PreprocessKeys.Start):
				return m, m.start()
			case key.Matches(msg, PreprocessKeys.Cancel):
				return m, func() tea.Msg {
					return SwitchToBrowserMsg{}
				}
			}

		case preprocessRunning:
			if key.Matches(msg, PreprocessKeys.Cancel) {
				if m.cancel != nil {
					m.cancel()
				}
				return m, nil
			}

		case preprocessDone:
			if key.Matches(msg, PreprocessKeys.Back) {
				return m, func() tea.Msg {
					return PreprocessFinishedMsg{}
				}
			}
		}
	}

	return m, nil
}

// start launches the run on its own goroutine and begins listening.
func (m *PreprocessModel) start() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = preprocessRunning
	m.lines = nil
	m.counts = commands.Counts{}

	events := make(chan tea.Msg, 64)
	m.events = events

	opts := commands.PreprocessOptions{
		SkipExisting: true,
		Overwrite:    m.overwrite,
		Progress: func(r commands.DirectoryResult, c commands.Counts) {
			events <- preprocessProgressMsg{result: r, counts: c}
		},
	}
	cmd := commands.NewPreprocessCommand(m.repo, m.scorer, m.root, opts)

	go func() {
		summary, err := cmd.Execute(ctx)
		events <- preprocessDoneMsg{summary: summary, err: err}
		close(events)
	}()

	return m.waitForEvent
}

func (m *PreprocessModel) waitForEvent() tea.Msg {
	return <-m.events
}

func renderProgressLine(r commands.DirectoryResult) string {
	var style = styles.StatusPending
	switch r.Status {
	case commands.StatusSucceeded:
		style = styles.StatusSucceeded
	case commands.StatusSkipped:
		style = styles.StatusSkipped
	case commands.StatusFailed:
		style = styles.StatusFailed
	case commands.StatusNotAttempted:
		style = styles.StatusSkipped
	}

	line := fmt.Sprintf("%-13s %s", r.Status, r.Dir)
	if r.Status == commands.StatusFailed && r.Detail != "" {
		line += ": " + r.Detail
	}
	return style.Render(line)
}

// View renders the preprocess view
func (m *PreprocessModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Preprocess"))
	b.WriteString("\n\n")

	switch m.state {
	case preprocessIdle:
		b.WriteString("Generate path manifests and score unprocessed directories under:\n")
		b.WriteString(styles.MutedText.Render("  " + m.root))
		b.WriteString("\n\n")
		overwrite := "off"
		if m.overwrite {
			overwrite = "on"
		}
		b.WriteString(fmt.Sprintf("Overwrite existing scores: %s\n\n", styles.InputLabel.Render(overwrite)))
		b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s",
			styles.HelpKey.Render("enter"), styles.HelpDesc.Render("start"),
			styles.HelpKey.Render("o"), styles.HelpDesc.Render("toggle overwrite"),
			styles.HelpKey.Render("esc"), styles.HelpDesc.Render("back"),
		))

	case preprocessRunning:
		done := m.counts.Succeeded + m.counts.Skipped + m.counts.Failed + m.counts.NotAttempted
		b.WriteString(fmt.Sprintf("Scoring... %d/%d directories\n\n", done, m.counts.Total))
		for _, line := range m.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel run"))

	case preprocessDone:
		if m.runErr != nil {
			b.WriteString(styles.ErrorMsg.Render("Run failed: " + m.runErr.Error()))
			b.WriteString("\n\n")
		} else if m.summary != nil {
			if m.summary.Canceled {
				b.WriteString(styles.ErrorMsg.Render("Run canceled"))
				b.WriteString("\n\n")
			}
			b.WriteString(fmt.Sprintf("%s %d succeeded  %s %d skipped  %s %d failed  %s %d not attempted\n\n",
				styles.StatusSucceeded.Render("✓"), m.summary.Counts.Succeeded,
				styles.StatusSkipped.Render("•"), m.summary.Counts.Skipped,
				styles.StatusFailed.Render("✗"), m.summary.Counts.Failed,
				styles.StatusSkipped.Render("-"), m.summary.Counts.NotAttempted,
			))
			for _, f := range m.summary.Failures() {
				b.WriteString(styles.StatusFailed.Render(fmt.Sprintf("failed %s: %s", f.Dir, f.Detail)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString(styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("back to browser (reloads dataset)"))
	}

	return styles.App.Render(b.String())
}
