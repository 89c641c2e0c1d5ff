package domain

// Scores maps a metric name to its value. A metric absent from the map was
// not reported by the score manifest for that record. The metric set is
// open: directories may carry metrics beyond the known columns.
type Scores map[string]float64

// KnownMetrics lists the metric columns the review surfaces show by default.
var KnownMetrics = []string{"CE", "CU", "PC", "PQ"}

// AudioRecord is one audio file paired with its per-metric quality scores.
// Records are immutable after creation; Path is the record identity used to
// track selection across view changes.
type AudioRecord struct {
	Filename  string // Base name, derived from Path
	Path      string // Absolute path as written in the path manifest
	SourceDir string // Directory whose manifest pair produced this record
	Scores    Scores
}

// Metric returns the value of a metric and whether the record has it.
func (r AudioRecord) Metric(name string) (float64, bool) {
	v, ok := r.Scores[name]
	return v, ok
}
