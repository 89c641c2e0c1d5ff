package domain

import "strings"

// Sortable non-metric columns.
const (
	SortByFilename = "filename"
	SortByPath     = "path"
)

// SortSpec orders a view by one column. Column is SortByFilename,
// SortByPath, or a metric name.
type SortSpec struct {
	Column     string
	Descending bool
}

// Compare orders a before b (negative), equal (zero), or a after b
// (positive) under the spec.
//
// Records missing the sort metric always order after records that have it,
// in both directions; Descending flips the comparator only for pairs where
// both records carry the metric. Equal records compare as zero so a stable
// sort preserves their prior relative order.
func (s SortSpec) Compare(a, b AudioRecord) int {
	switch s.Column {
	case SortByFilename:
		return s.direction(strings.Compare(strings.ToLower(a.Filename), strings.ToLower(b.Filename)))
	case SortByPath:
		return s.direction(strings.Compare(a.Path, b.Path))
	}

	av, aok := a.Metric(s.Column)
	bv, bok := b.Metric(s.Column)
	switch {
	case aok && bok:
		switch {
		case av < bv:
			return s.direction(-1)
		case av > bv:
			return s.direction(1)
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}

func (s SortSpec) direction(cmp int) int {
	if s.Descending {
		return -cmp
	}
	return cmp
}
