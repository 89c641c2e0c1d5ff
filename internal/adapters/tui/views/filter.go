package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/tui/styles"
	"audiorev/internal/domain"
)

// FilterModel is the filter form: a name substring plus inclusive min/max
// bounds for each metric. Empty fields are ignored.
type FilterModel struct {
	ViewState
	form    *InputForm
	metrics []string
}

// FilterAppliedMsg carries the criteria built from the submitted form.
type FilterAppliedMsg struct {
	Criteria domain.FilterCriteria
}

// NewFilterModel creates a new filter form model
func NewFilterModel() *FilterModel {
	metrics := domain.KnownMetrics

	fields := []InputField{NewInputField("Filename contains", "substring", 60)}
	for _, metric := range metrics {
		fields = append(fields,
			NewInputField(metric+" min", "e.g. 3.5", 10),
			NewInputField(metric+" max", "e.g. 7", 10),
		)
	}

	return &FilterModel{
		form:    NewInputForm(fields...),
		metrics: metrics,
	}
}

// Init initializes the filter form
func (m *FilterModel) Init() tea.Cmd {
	return m.form.Init()
}

// SetCriteria prefills the form from existing criteria.
func (m *FilterModel) SetCriteria(criteria domain.FilterCriteria) {
	m.form.Reset()
	m.ClearMessage()
	m.form.SetValue(0, criteria.NameContains)
	for i, metric := range m.metrics {
		if b, ok := criteria.Bounds[metric]; ok {
			if b.Min != nil {
				m.form.SetValue(1+2*i, formatBound(*b.Min))
			}
			if b.Max != nil {
				m.form.SetValue(2+2*i, formatBound(*b.Max))
			}
		}
	}
}

// Update handles messages for the filter form
func (m *FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			criteria, err := m.buildCriteria()
			if err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, func() tea.Msg {
				return FilterAppliedMsg{Criteria: criteria}
			}
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FilterModel) buildCriteria() (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{NameContains: m.form.Value(0)}

	bounds := map[string]domain.Bound{}
	for i, metric := range m.metrics {
		b := domain.Bound{}
		if v, err := parseBoundField(m.form.Value(1 + 2*i)); err != nil {
			return criteria, fmt.Errorf("%s min: %w", metric, err)
		} else {
			b.Min = v
		}
		if v, err := parseBoundField(m.form.Value(2 + 2*i)); err != nil {
			return criteria, fmt.Errorf("%s max: %w", metric, err)
		} else {
			b.Max = v
		}
		if !b.IsZero() {
			bounds[metric] = b
		}
	}
	if len(bounds) > 0 {
		criteria.Bounds = bounds
	}
	return criteria, nil
}

func parseBoundField(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return &v, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View renders the filter form
func (m *FilterModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Filter"))
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")

	// Metric bounds, min and max side by side per metric
	for i := range m.metrics {
		b.WriteString(m.form.RenderField(1 + 2*i))
		b.WriteString("\n")
		b.WriteString(m.form.RenderField(2 + 2*i))
		b.WriteString("\n\n")
	}

	if m.Message != "" && m.MessageErr {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("apply filter"))

	return styles.App.Render(b.String())
}
