package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"audiorev/internal/ports"
)

// DefaultBatchSize bounds how many paths one scoring invocation receives.
const DefaultBatchSize = 100

// ErrScorerUnavailable aborts a run before any directory is touched: if
// the scoring command cannot be invoked, no directory could succeed.
var ErrScorerUnavailable = errors.New("scoring command not available")

// DirStatus is the terminal state of one directory in a preprocessing run.
type DirStatus int

const (
	StatusPending DirStatus = iota
	StatusSucceeded
	StatusSkipped
	StatusFailed
	StatusNotAttempted // run canceled before this directory completed
)

func (s DirStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusNotAttempted:
		return "not-attempted"
	default:
		return "unknown"
	}
}

// DirectoryResult is the terminal record of one directory.
type DirectoryResult struct {
	Dir    string
	Status DirStatus
	Detail string // command diagnostics, skip reason, or error detail
}

// Counts accumulates terminal states over a run.
type Counts struct {
	Succeeded    int
	Skipped      int
	Failed       int
	NotAttempted int
	Total        int
}

// PreprocessOptions configures a run.
type PreprocessOptions struct {
	// BatchSize caps paths per scoring invocation; 0 means DefaultBatchSize.
	BatchSize int

	// SkipExisting leaves directories with an existing score manifest
	// untouched. Overwrite rescores them regardless and takes precedence
	// when both are set.
	SkipExisting bool
	Overwrite    bool

	// Progress, when set, is invoked after each directory reaches a
	// terminal state, with that directory's result and the cumulative
	// counts. It is called from the goroutine running Execute.
	Progress func(DirectoryResult, Counts)
}

// PreprocessSummary is the structured outcome of a run. Individual
// directory failures never abort the run; they are collected here.
type PreprocessSummary struct {
	RunID    string
	Root     string
	Counts   Counts
	Results  []DirectoryResult
	Canceled bool
	Elapsed  time.Duration
}

// Failures returns the results that ended in StatusFailed.
func (s *PreprocessSummary) Failures() []DirectoryResult {
	var failures []DirectoryResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failures = append(failures, r)
		}
	}
	return failures
}

// PreprocessCommand walks the immediate subdirectories of Root, generates
// missing path manifests, and drives the external scoring command per
// directory. One bad directory never aborts the batch.
type PreprocessCommand struct {
	repo    ports.DatasetRepository
	scorer  ports.Scorer
	Root    string
	Options PreprocessOptions
}

// NewPreprocessCommand creates a new PreprocessCommand
func NewPreprocessCommand(repo ports.DatasetRepository, scorer ports.Scorer, root string, opts PreprocessOptions) *PreprocessCommand {
	return &PreprocessCommand{repo: repo, scorer: scorer, Root: root, Options: opts}
}

// Execute runs the batch. Directories are processed sequentially in
// lexicographic order so repeated runs produce the same progress sequence
// and summary ordering. Cancellation is checked between directories; a
// directory whose scoring was interrupted by cancellation is marked
// not-attempted (its score manifest is never partially written), as are
// all directories after it. Only setup problems (unreadable root,
// unavailable scoring command) return an error.
func (c *PreprocessCommand) Execute(ctx context.Context) (*PreprocessSummary, error) {
	start := time.Now()

	if c.scorer == nil || !c.scorer.IsAvailable() {
		return nil, ErrScorerUnavailable
	}

	dirs, err := c.repo.ListSubdirs(c.Root)
	if err != nil {
		return nil, err
	}

	batch := c.Options.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	summary := &PreprocessSummary{
		RunID: uuid.NewString(),
		Root:  c.Root,
	}
	summary.Counts.Total = len(dirs)

	for _, dir := range dirs {
		if summary.Canceled || ctx.Err() != nil {
			summary.Canceled = true
			c.record(summary, DirectoryResult{Dir: dir, Status: StatusNotAttempted, Detail: "run canceled"})
			continue
		}

		result := c.processDir(ctx, dir, batch)
		if result.Status == StatusNotAttempted {
			summary.Canceled = true
		}
		c.record(summary, result)
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func (c *PreprocessCommand) processDir(ctx context.Context, dir string, batch int) DirectoryResult {
	// Skip is terminal straight from pending; Overwrite wins over it.
	if !c.Options.Overwrite && c.Options.SkipExisting && c.repo.HasScoreManifest(dir) {
		return DirectoryResult{Dir: dir, Status: StatusSkipped, Detail: "score manifest exists"}
	}

	if !c.repo.HasPathManifest(dir) || c.Options.Overwrite {
		n, err := c.repo.WritePathManifest(dir)
		if err != nil {
			return DirectoryResult{Dir: dir, Status: StatusFailed, Detail: err.Error()}
		}
		if n == 0 {
			return DirectoryResult{Dir: dir, Status: StatusSkipped, Detail: "no audio files"}
		}
	}

	detail, err := c.scorer.ScoreDirectory(ctx, dir, batch)
	if err != nil {
		if ctx.Err() != nil {
			return DirectoryResult{Dir: dir, Status: StatusNotAttempted, Detail: "run canceled"}
		}
		return DirectoryResult{Dir: dir, Status: StatusFailed, Detail: err.Error()}
	}
	return DirectoryResult{Dir: dir, Status: StatusSucceeded, Detail: detail}
}

func (c *PreprocessCommand) record(summary *PreprocessSummary, result DirectoryResult) {
	summary.Results = append(summary.Results, result)
	switch result.Status {
	case StatusSucceeded:
		summary.Counts.Succeeded++
	case StatusSkipped:
		summary.Counts.Skipped++
	case StatusFailed:
		summary.Counts.Failed++
	case StatusNotAttempted:
		summary.Counts.NotAttempted++
	}
	if c.Options.Progress != nil {
		c.Options.Progress(result, summary.Counts)
	}
}
