package application

import "audiorev/internal/domain"

// Session holds one user's in-memory dataset state: the index, the current
// view, and the selection. It is an explicit object so multiple sessions
// (and tests) run in isolation; there is no module-level dataset state.
//
// A Session is owned by the foreground goroutine. The preprocessing
// orchestrator never touches it; it only writes manifests, and the caller
// rebuilds the index afterwards.
type Session struct {
	root      string
	index     *Index
	diags     []domain.Diagnostic
	view      View
	selection map[string]struct{}
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		index:     NewIndex(nil),
		selection: make(map[string]struct{}),
	}
}

// SetIndex installs a freshly built index, resets the view to full index
// order, and reconciles the selection against the new records.
func (s *Session) SetIndex(root string, ix *Index, diags []domain.Diagnostic) {
	s.root = root
	s.index = ix
	s.diags = diags
	s.SetView(View{Records: ix.Records()})
}

// SetView installs a new view and reconciles the selection: identities no
// longer visible are dropped, so re-filtering never leaves the selection
// pointing at hidden records.
func (s *Session) SetView(v View) {
	s.view = v
	if len(s.selection) == 0 {
		return
	}
	visible := make(map[string]struct{}, len(v.Records))
	for _, r := range v.Records {
		visible[r.Path] = struct{}{}
	}
	for path := range s.selection {
		if _, ok := visible[path]; !ok {
			delete(s.selection, path)
		}
	}
}

// Root returns the dataset root of the last load.
func (s *Session) Root() string { return s.root }

// Index returns the current index.
func (s *Session) Index() *Index { return s.index }

// Diagnostics returns the directory-level problems from the last load.
func (s *Session) Diagnostics() []domain.Diagnostic { return s.diags }

// View returns the current view.
func (s *Session) View() View { return s.view }

// Select marks a visible record as selected; identities outside the
// current view are ignored.
func (s *Session) Select(path string) {
	if s.view.Contains(path) {
		s.selection[path] = struct{}{}
	}
}

// Deselect removes a record from the selection.
func (s *Session) Deselect(path string) {
	delete(s.selection, path)
}

// Toggle flips the selection state of a visible record.
func (s *Session) Toggle(path string) {
	if s.IsSelected(path) {
		s.Deselect(path)
		return
	}
	s.Select(path)
}

// IsSelected reports whether the record identity is selected.
func (s *Session) IsSelected(path string) bool {
	_, ok := s.selection[path]
	return ok
}

// SelectAllVisible selects every record in the current view.
func (s *Session) SelectAllVisible() {
	for _, r := range s.view.Records {
		s.selection[r.Path] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection = make(map[string]struct{})
}

// SelectionCount returns the number of selected records.
func (s *Session) SelectionCount() int { return len(s.selection) }

// SelectedPaths returns the selected identities in current view order.
func (s *Session) SelectedPaths() []string {
	var paths []string
	for _, r := range s.view.Records {
		if s.IsSelected(r.Path) {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// SelectedRecords returns the selected records in current view order.
func (s *Session) SelectedRecords() []domain.AudioRecord {
	var records []domain.AudioRecord
	for _, r := range s.view.Records {
		if s.IsSelected(r.Path) {
			records = append(records, r)
		}
	}
	return records
}
