package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for manifest states the caller routes on
var (
	// ErrManifestMissing means a directory has no path manifest; the
	// caller may treat it as "needs preprocessing" rather than fatal.
	ErrManifestMissing = errors.New("path manifest missing")

	// ErrScoresMissing means the path manifest exists but the score
	// manifest does not. The directory is valid but unscored.
	ErrScoresMissing = errors.New("score manifest missing")
)

// ManifestMismatchError reports a structurally broken manifest pair: the
// two files disagree on line count, or a line is not valid JSON. The
// directory contributes zero records.
type ManifestMismatchError struct {
	Dir    string
	Line   int // 1-based offending line, 0 when the whole pair mismatches
	Detail string
}

func (e *ManifestMismatchError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest mismatch in %s line %d: %s", e.Dir, e.Line, e.Detail)
	}
	return fmt.Sprintf("manifest mismatch in %s: %s", e.Dir, e.Detail)
}
