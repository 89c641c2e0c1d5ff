package commands

import (
	"context"
	"errors"
	"fmt"

	"audiorev/internal/application"
	"audiorev/internal/domain"
	"audiorev/internal/ports"
)

// LoadResult bundles a rebuilt index with its diagnostics. The build is
// best-effort: directory-level problems land in Diagnostics while the
// index keeps every valid record found.
type LoadResult struct {
	Index       *application.Index
	Diagnostics []domain.Diagnostic
	DirsScanned int
}

// LoadCommand rebuilds the dataset index from the manifests under Root.
type LoadCommand struct {
	repo ports.DatasetRepository
	Root string
}

// NewLoadCommand creates a new LoadCommand
func NewLoadCommand(repo ports.DatasetRepository, root string) *LoadCommand {
	return &LoadCommand{repo: repo, Root: root}
}

// Execute discovers manifest directories under Root, reads each pair, and
// concatenates the records preserving directory-then-line order. Only a
// root-level problem returns an error; everything else is a diagnostic.
// Given unchanged files the result is identical run to run.
func (c *LoadCommand) Execute(ctx context.Context) (*LoadResult, error) {
	dirs, err := c.repo.Discover(c.Root)
	if err != nil {
		return nil, err
	}

	var (
		records []domain.AudioRecord
		diags   []domain.Diagnostic
		seen    = map[string]string{} // path -> first source dir
	)

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dirRecords, err := c.repo.ReadPair(dir)
		if err != nil {
			diags = append(diags, diagnose(dir, err))
			continue
		}

		for _, r := range dirRecords {
			if first, dup := seen[r.Path]; dup {
				diags = append(diags, domain.Diagnostic{
					Dir:    dir,
					Kind:   domain.DiagDuplicatePath,
					Detail: fmt.Sprintf("%s already indexed from %s", r.Path, first),
				})
				continue
			}
			seen[r.Path] = dir
			records = append(records, r)
		}
	}

	return &LoadResult{
		Index:       application.NewIndex(records),
		Diagnostics: diags,
		DirsScanned: len(dirs),
	}, nil
}

// diagnose maps a reader error onto the diagnostic taxonomy.
func diagnose(dir string, err error) domain.Diagnostic {
	var mismatch *domain.ManifestMismatchError
	switch {
	case errors.Is(err, domain.ErrScoresMissing):
		return domain.Diagnostic{Dir: dir, Kind: domain.DiagScoresMissing, Detail: "directory is unscored"}
	case errors.As(err, &mismatch):
		kind := domain.DiagMismatch
		if mismatch.Line > 0 {
			kind = domain.DiagParseError
		}
		return domain.Diagnostic{Dir: dir, Kind: kind, Detail: mismatch.Detail}
	default:
		return domain.Diagnostic{Dir: dir, Kind: domain.DiagParseError, Detail: err.Error()}
	}
}
