package domain

import "fmt"

// DiagnosticKind classifies a per-directory problem found while building
// the index.
type DiagnosticKind int

const (
	DiagScoresMissing DiagnosticKind = iota // directory has paths but no scores
	DiagMismatch                            // manifest pair disagrees structurally
	DiagParseError                          // a manifest line is not valid JSON
	DiagDuplicatePath                       // path already seen; first occurrence kept
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagScoresMissing:
		return "scores-missing"
	case DiagMismatch:
		return "mismatch"
	case DiagParseError:
		return "parse-error"
	case DiagDuplicatePath:
		return "duplicate-path"
	default:
		return "unknown"
	}
}

// Diagnostic is one directory-level problem surfaced by an index build.
// Problems are collected, never thrown past the directory boundary.
type Diagnostic struct {
	Dir    string
	Kind   DiagnosticKind
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Dir, d.Detail)
}
