package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/application"
	"audiorev/internal/application/commands"
	"audiorev/internal/domain"
	"audiorev/internal/ports"
)

// stubRepo satisfies ports.DatasetRepository for models that never touch
// the filesystem in these tests.
type stubRepo struct{}

var _ ports.DatasetRepository = stubRepo{}

func (stubRepo) Discover(string) ([]string, error)              { return nil, nil }
func (stubRepo) ListSubdirs(string) ([]string, error)           { return nil, nil }
func (stubRepo) ReadPair(string) ([]domain.AudioRecord, error)  { return nil, nil }
func (stubRepo) HasPathManifest(string) bool                    { return false }
func (stubRepo) HasScoreManifest(string) bool                   { return false }
func (stubRepo) WritePathManifest(string) (int, error)          { return 0, nil }

func loadedBrowser(t *testing.T, records []domain.AudioRecord) *BrowserModel {
	t.Helper()
	session := application.NewSession()
	m := NewBrowserModel(stubRepo{}, session, "/data")
	m.Update(datasetLoadedMsg{result: &commands.LoadResult{
		Index: application.NewIndex(records),
	}})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browserRecords() []domain.AudioRecord {
	return []domain.AudioRecord{
		{Filename: "b.wav", Path: "/audio/b.wav", Scores: domain.Scores{"PQ": 2}},
		{Filename: "a.wav", Path: "/audio/a.wav", Scores: domain.Scores{"PQ": 5}},
		{Filename: "c.wav", Path: "/audio/c.wav"},
	}
}

func TestBrowserMarkAdvancesCursor(t *testing.T) {
	m := loadedBrowser(t, browserRecords())

	m.Update(keyRunes(" "))

	if !m.session.IsSelected("/audio/b.wav") {
		t.Error("first record not marked after space")
	}
	if m.pager.Cursor() != 1 {
		t.Errorf("cursor = %d after mark, want 1", m.pager.Cursor())
	}

	// Back up and toggle off.
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(keyRunes(" "))
	if m.session.IsSelected("/audio/b.wav") {
		t.Error("record still marked after second toggle")
	}
}

func TestBrowserSortCycle(t *testing.T) {
	m := loadedBrowser(t, browserRecords())

	// First press leaves discovery order, second sorts by filename.
	m.Update(keyRunes("s"))
	records := m.session.View().Records
	if records[0].Filename != "a.wav" {
		t.Errorf("first record = %q after filename sort, want a.wav", records[0].Filename)
	}

	// Cycle through path to the metric columns.
	m.Update(keyRunes("s"))
	m.Update(keyRunes("s"))
	if got := sortColumns[m.sortIdx]; got != "CE" {
		t.Errorf("sort column = %q after three presses, want CE", got)
	}
}

func TestBrowserSortDirectionKeepsMissingLast(t *testing.T) {
	m := loadedBrowser(t, browserRecords())

	// Sort by PQ: filename, path, CE, CU, PC, PQ = six presses.
	for i := 0; i < 6; i++ {
		m.Update(keyRunes("s"))
	}
	records := m.session.View().Records
	if records[0].Filename != "b.wav" || records[2].Filename != "c.wav" {
		t.Errorf("ascending PQ order = %v, want b.wav first, unscored c.wav last", viewFilenames(records))
	}

	m.Update(keyRunes("o"))
	records = m.session.View().Records
	if records[0].Filename != "a.wav" || records[2].Filename != "c.wav" {
		t.Errorf("descending PQ order = %v, want a.wav first, unscored c.wav still last", viewFilenames(records))
	}
}

func TestBrowserFilterKeepsVisibleMarks(t *testing.T) {
	m := loadedBrowser(t, browserRecords())
	m.session.Select("/audio/a.wav")
	m.session.Select("/audio/c.wav")

	min := 3.0
	m.ApplyFilter(domain.FilterCriteria{
		Bounds: map[string]domain.Bound{"PQ": {Min: &min}},
	})

	if got := m.session.View().Len(); got != 1 {
		t.Fatalf("view has %d records after filter, want 1", got)
	}
	if !m.session.IsSelected("/audio/a.wav") {
		t.Error("mark on still-visible record dropped by filter")
	}
	if m.session.IsSelected("/audio/c.wav") {
		t.Error("mark kept on record the filter excludes")
	}

	// Clearing the filter brings every record back, marks stay reconciled.
	m.ApplyFilter(domain.FilterCriteria{})
	if got := m.session.View().Len(); got != 3 {
		t.Errorf("view has %d records after clearing filter, want 3", got)
	}
	if m.session.SelectionCount() != 1 {
		t.Errorf("SelectionCount() = %d, want 1", m.session.SelectionCount())
	}
}

func TestBrowserMarkAllAndClear(t *testing.T) {
	m := loadedBrowser(t, browserRecords())

	m.Update(keyRunes("a"))
	if m.session.SelectionCount() != 3 {
		t.Errorf("SelectionCount() = %d after mark all, want 3", m.session.SelectionCount())
	}

	m.Update(keyRunes("A"))
	if m.session.SelectionCount() != 0 {
		t.Errorf("SelectionCount() = %d after clear, want 0", m.session.SelectionCount())
	}
}

func viewFilenames(records []domain.AudioRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Filename)
	}
	return names
}
