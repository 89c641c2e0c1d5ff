package domain

import (
	"strings"
)

// Bound is an inclusive numeric range; a nil end is unbounded.
type Bound struct {
	Min *float64
	Max *float64
}

// Contains reports whether v falls inside the bound.
func (b Bound) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// IsZero reports whether the bound constrains nothing.
func (b Bound) IsZero() bool {
	return b.Min == nil && b.Max == nil
}

// FilterCriteria selects records from an index. The zero value matches
// every record.
type FilterCriteria struct {
	// NameContains is a case-insensitive substring match on Filename.
	// Empty means no constraint.
	NameContains string

	// Bounds constrains metric values by name. A record passes a bound
	// only if it has the metric; records missing the metric fail any
	// bound set on it. That is deliberate: an unscored record should not
	// slip through a quality cut.
	Bounds map[string]Bound
}

// Matches reports whether the record passes every criterion.
func (c FilterCriteria) Matches(r AudioRecord) bool {
	if c.NameContains != "" {
		if !strings.Contains(strings.ToLower(r.Filename), strings.ToLower(c.NameContains)) {
			return false
		}
	}
	for metric, bound := range c.Bounds {
		if bound.IsZero() {
			continue
		}
		v, ok := r.Metric(metric)
		if !ok || !bound.Contains(v) {
			return false
		}
	}
	return true
}
