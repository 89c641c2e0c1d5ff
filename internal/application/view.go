package application

import "audiorev/internal/domain"

// View is a filtered and/or sorted projection of an Index. A view never
// owns records and never mutates the index; every query produces a fresh
// view and old ones are simply dropped.
type View struct {
	Records  []domain.AudioRecord
	Criteria domain.FilterCriteria
	Sort     *domain.SortSpec // nil when the view keeps index order
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.Records)
}

// Paths returns the record identities in view order.
func (v View) Paths() []string {
	paths := make([]string, len(v.Records))
	for i, r := range v.Records {
		paths[i] = r.Path
	}
	return paths
}

// Contains reports whether the view still holds the given identity.
func (v View) Contains(path string) bool {
	for _, r := range v.Records {
		if r.Path == path {
			return true
		}
	}
	return false
}
