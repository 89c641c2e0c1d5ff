package ports

import "context"

// Scorer drives the external scoring command for one directory.
type Scorer interface {
	// ScoreDirectory reads the directory's path manifest, invokes the
	// scoring command in batches of at most batchSize paths, and writes
	// the score manifest on success. The returned detail carries the
	// command's captured diagnostics for logging; on error it is
	// embedded in the error instead.
	ScoreDirectory(ctx context.Context, dir string, batchSize int) (string, error)

	// IsAvailable reports whether the scoring command can be invoked.
	IsAvailable() bool
}
