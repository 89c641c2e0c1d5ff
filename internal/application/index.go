package application

import "audiorev/internal/domain"

// Index is the in-memory dataset index: every record from every discovered
// directory, in directory-then-manifest-line order. An Index is rebuilt
// wholesale by the load command and never patched in place; callers must
// not mutate the record slice.
type Index struct {
	records []domain.AudioRecord
	byPath  map[string]int
}

// NewIndex builds an index over records. Records must already be
// de-duplicated by path; the load command enforces the first-seen-wins
// policy before construction.
func NewIndex(records []domain.AudioRecord) *Index {
	byPath := make(map[string]int, len(records))
	for i, r := range records {
		byPath[r.Path] = i
	}
	return &Index{records: records, byPath: byPath}
}

// Records returns the full record sequence in index order.
func (ix *Index) Records() []domain.AudioRecord {
	return ix.records
}

// Len returns the number of records in the index.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Lookup resolves a record by its path identity.
func (ix *Index) Lookup(path string) (domain.AudioRecord, bool) {
	i, ok := ix.byPath[path]
	if !ok {
		return domain.AudioRecord{}, false
	}
	return ix.records[i], true
}
