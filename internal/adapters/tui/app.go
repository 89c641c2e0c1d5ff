package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/player"
	"audiorev/internal/adapters/tui/views"
	"audiorev/internal/application"
	"audiorev/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewFilter
	ViewDiagnostics
	ViewPreprocess
	ViewExport
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo   ports.DatasetRepository
	player *player.Player

	state       ViewState
	browser     *views.BrowserModel
	filter      *views.FilterModel
	diagnostics *views.DiagnosticsModel
	preprocess  *views.PreprocessModel
	export      *views.ExportModel
	help        *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(repo ports.DatasetRepository, scorer ports.Scorer, pl *player.Player, root string) *App {
	session := application.NewSession()
	return &App{
		repo:        repo,
		player:      pl,
		state:       ViewBrowser,
		browser:     views.NewBrowserModel(repo, session, root),
		filter:      views.NewFilterModel(),
		diagnostics: views.NewDiagnosticsModel(session),
		preprocess:  views.NewPreprocessModel(repo, scorer, root),
		export:      views.NewExportModel(session),
		help:        views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.filter.SetSize(msg.Width, msg.Height)
		a.diagnostics.SetSize(msg.Width, msg.Height)
		a.preprocess.SetSize(msg.Width, msg.Height)
		a.export.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFilterMsg:
		a.state = ViewFilter
		a.filter.SetCriteria(msg.Criteria)
		return a, a.filter.Init()

	case views.FilterAppliedMsg:
		a.state = ViewBrowser
		a.browser.ApplyFilter(msg.Criteria)
		return a, nil

	case views.SwitchToDiagnosticsMsg:
		a.state = ViewDiagnostics
		return a, a.diagnostics.Init()

	case views.SwitchToPreprocessMsg:
		a.state = ViewPreprocess
		a.preprocess.Reset()
		return a, a.preprocess.Init()

	case views.PreprocessFinishedMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.SwitchToExportMsg:
		a.state = ViewExport
		return a, a.export.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.PlayRequestMsg:
		return a, a.play(msg.Path)

	case playbackFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewFilter:
		_, cmd = a.filter.Update(msg)
	case ViewDiagnostics:
		_, cmd = a.diagnostics.Update(msg)
	case ViewPreprocess:
		_, cmd = a.preprocess.Update(msg)
	case ViewExport:
		_, cmd = a.export.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type playbackFinishedMsg struct{ err error }

func (a *App) play(path string) tea.Cmd {
	if a.player == nil {
		return nil
	}

	cmd, err := a.player.Command(path)
	if err != nil {
		return func() tea.Msg {
			return playbackFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return playbackFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewFilter:
		return a.filter.View()
	case ViewDiagnostics:
		return a.diagnostics.View()
	case ViewPreprocess:
		return a.preprocess.View()
	case ViewExport:
		return a.export.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
