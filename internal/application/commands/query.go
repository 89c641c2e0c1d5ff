package commands

import (
	"context"
	"sort"

	"audiorev/internal/application"
	"audiorev/internal/domain"
)

// QueryCommand evaluates a filter and sort over an index.
type QueryCommand struct {
	index    *application.Index
	Criteria domain.FilterCriteria
	Sort     *domain.SortSpec
}

// NewQueryCommand creates a new QueryCommand
func NewQueryCommand(index *application.Index, criteria domain.FilterCriteria, spec *domain.SortSpec) *QueryCommand {
	return &QueryCommand{index: index, Criteria: criteria, Sort: spec}
}

// Execute runs the query and returns a fresh view.
func (c *QueryCommand) Execute(ctx context.Context) (application.View, error) {
	return ApplyQuery(c.index, c.Criteria, c.Sort), nil
}

// ApplyQuery filters the index, then stable-sorts the result. The filter
// is a pure O(n) projection recomputed from the index every call; views
// are never patched incrementally, so they cannot go stale. The sort is
// stable: ties keep their prior relative order (the discovery order, or
// the previous sort on a re-sort). A nil spec keeps index order.
func ApplyQuery(ix *application.Index, criteria domain.FilterCriteria, spec *domain.SortSpec) application.View {
	source := ix.Records()
	filtered := make([]domain.AudioRecord, 0, len(source))
	for _, r := range source {
		if criteria.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	if spec != nil {
		s := *spec
		sort.SliceStable(filtered, func(i, j int) bool {
			return s.Compare(filtered[i], filtered[j]) < 0
		})
	}

	return application.View{Records: filtered, Criteria: criteria, Sort: spec}
}
