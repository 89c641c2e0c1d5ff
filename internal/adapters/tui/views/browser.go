package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/tui/styles"
	"audiorev/internal/application"
	"audiorev/internal/application/commands"
	"audiorev/internal/domain"
	"audiorev/internal/ports"
)

// BrowserKeyMap defines key bindings for the record browser
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Play       key.Binding
	Mark       key.Binding
	MarkAll    key.Binding
	ClearMarks key.Binding
	Copy       key.Binding
	Filter     key.Binding
	Sort       key.Binding
	Direction  key.Binding
	Diags      key.Binding
	Preprocess key.Binding
	Export     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play"),
	),
	Mark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	MarkAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "mark all"),
	),
	ClearMarks: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "clear marks"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy path"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle sort"),
	),
	Direction: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reverse sort"),
	),
	Diags: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "diagnostics"),
	),
	Preprocess: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "preprocess"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// sortColumns is the cycle order for the sort key. The empty column means
// discovery order.
var sortColumns = append([]string{"", domain.SortByFilename, domain.SortByPath}, domain.KnownMetrics...)

const browserPageSize = 20

// BrowserModel is the record table view. It owns the session: the current
// filter, sort, and marks live here and survive reloads.
type BrowserModel struct {
	ViewState
	repo    ports.DatasetRepository
	session *application.Session
	root    string

	pager    *Paginator
	criteria domain.FilterCriteria
	sortIdx  int
	desc     bool
	loading  bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.DatasetRepository, session *application.Session, root string) *BrowserModel {
	return &BrowserModel{
		repo:    repo,
		session: session,
		root:    root,
		pager:   NewPaginator(browserPageSize),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	m.loading = true
	return m.loadDataset
}

func (m *BrowserModel) loadDataset() tea.Msg {
	result, err := commands.NewLoadCommand(m.repo, m.root).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return datasetLoadedMsg{result}
}

type datasetLoadedMsg struct {
	result *commands.LoadResult
}

type errMsg struct {
	err error
}

// PlayRequestMsg asks the app to play an audio file in the foreground.
type PlayRequestMsg struct {
	Path string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case datasetLoadedMsg:
		m.loading = false
		m.session.SetIndex(m.root, msg.result.Index, msg.result.Diagnostics)
		m.refreshView()
		if n := len(msg.result.Diagnostics); n > 0 {
			m.SetMessage(fmt.Sprintf("%d directories with problems (press d)", n), false)
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, BrowserKeys.PrevPage):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.NextPage):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.Play):
			if r, ok := m.selectedRecord(); ok {
				return m, func() tea.Msg {
					return PlayRequestMsg{Path: r.Path}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Mark):
			if r, ok := m.selectedRecord(); ok {
				m.session.Toggle(r.Path)
				m.pager.CursorDown()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.MarkAll):
			m.session.SelectAllVisible()
			return m, nil

		case key.Matches(msg, BrowserKeys.ClearMarks):
			m.session.ClearSelection()
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if r, ok := m.selectedRecord(); ok {
				if err := clipboard.WriteAll(r.Path); err != nil {
					m.SetMessage(err.Error(), true)
				} else {
					m.SetMessage("copied "+r.Path, false)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Sort):
			m.sortIdx = (m.sortIdx + 1) % len(sortColumns)
			m.refreshView()
			return m, nil

		case key.Matches(msg, BrowserKeys.Direction):
			m.desc = !m.desc
			m.refreshView()
			return m, nil

		case key.Matches(msg, BrowserKeys.Filter):
			criteria := m.criteria
			return m, func() tea.Msg {
				return SwitchToFilterMsg{Criteria: criteria}
			}

		case key.Matches(msg, BrowserKeys.Diags):
			return m, func() tea.Msg {
				return SwitchToDiagnosticsMsg{}
			}

		case key.Matches(msg, BrowserKeys.Preprocess):
			return m, func() tea.Msg {
				return SwitchToPreprocessMsg{}
			}

		case key.Matches(msg, BrowserKeys.Export):
			return m, func() tea.Msg {
				return SwitchToExportMsg{}
			}

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// ApplyFilter installs new criteria and recomputes the view.
func (m *BrowserModel) ApplyFilter(criteria domain.FilterCriteria) {
	m.criteria = criteria
	m.refreshView()
}

// Criteria returns the current filter criteria.
func (m *BrowserModel) Criteria() domain.FilterCriteria {
	return m.criteria
}

// Reload rereads the manifests from disk. Filter, sort, and marks for
// still-visible records are kept.
func (m *BrowserModel) Reload() tea.Cmd {
	m.loading = true
	return m.loadDataset
}

func (m *BrowserModel) sortSpec() *domain.SortSpec {
	column := sortColumns[m.sortIdx]
	if column == "" {
		return nil
	}
	return &domain.SortSpec{Column: column, Descending: m.desc}
}

// refreshView recomputes the view from the index and clamps the cursor.
func (m *BrowserModel) refreshView() {
	view := commands.ApplyQuery(m.session.Index(), m.criteria, m.sortSpec())
	m.session.SetView(view)
	m.pager.SetTotal(view.Len())
}

func (m *BrowserModel) selectedRecord() (domain.AudioRecord, bool) {
	records := m.session.View().Records
	cursor := m.pager.Cursor()
	if cursor >= 0 && cursor < len(records) {
		return records[cursor], true
	}
	return domain.AudioRecord{}, false
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("AudioREV"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Audio Review Dataset Browser"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading dataset...")
		return styles.App.Render(b.String())
	}

	records := m.session.View().Records
	if len(records) == 0 {
		b.WriteString(styles.MutedText.Render("No records match the current filter"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(records[i], i == m.pager.Cursor()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderHeader() string {
	sorted := sortColumns[m.sortIdx]

	cells := []string{headerCell("Filename", sorted == domain.SortByFilename, 40)}
	for _, metric := range domain.KnownMetrics {
		cells = append(cells, headerCell(metric, sorted == metric, 7))
	}
	return "  " + strings.Join(cells, " ")
}

func headerCell(label string, sorted bool, width int) string {
	text := padRight(label, width)
	if sorted {
		return styles.SortedHeader.Render(text)
	}
	return styles.TableHeader.Render(text)
}

func (m *BrowserModel) renderRow(r domain.AudioRecord, selected bool) string {
	mark := styles.MarkInactive
	if m.session.IsSelected(r.Path) {
		mark = styles.MarkActive
	}

	cells := []string{padRight(truncate(r.Filename, 40), 40)}
	for _, metric := range domain.KnownMetrics {
		if v, ok := r.Metric(metric); ok {
			cells = append(cells, padRight(fmt.Sprintf("%.2f", v), 7))
		} else {
			cells = append(cells, padRight("-", 7))
		}
	}
	text := strings.Join(cells, " ")

	switch {
	case selected:
		return styles.RowMarked.Render(mark) + styles.RowSelected.Render(text)
	case m.session.IsSelected(r.Path):
		return styles.RowMarked.Render(mark + text)
	case len(r.Scores) == 0:
		return mark + styles.RowUnscored.Render(text)
	default:
		return mark + styles.Row.Render(text)
	}
}

func (m *BrowserModel) renderStatus() string {
	view := m.session.View()
	parts := []string{
		fmt.Sprintf("%d of %d records", view.Len(), m.session.Index().Len()),
		fmt.Sprintf("%d marked", m.session.SelectionCount()),
		fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()),
	}
	if spec := m.sortSpec(); spec != nil {
		dir := "asc"
		if spec.Descending {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", spec.Column, dir))
	}
	return styles.StatusText.Render(strings.Join(parts, "  •  "))
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"space", "mark"},
		{"enter", "play"},
		{"/", "filter"},
		{"s/o", "sort"},
		{"p", "preprocess"},
		{"e", "export"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// Messages for view switching
type SwitchToFilterMsg struct {
	Criteria domain.FilterCriteria
}

type SwitchToDiagnosticsMsg struct{}

type SwitchToPreprocessMsg struct{}

type SwitchToExportMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
