package commands

import (
	"context"
	"errors"
	"sort"

	"audiorev/internal/domain"
	"audiorev/internal/ports"
)

var errBadRoot = errors.New("unknown root")

// fakeRepo is an in-memory ports.DatasetRepository for command tests.
type fakeRepo struct {
	root      string
	dirs      []string
	records   map[string][]domain.AudioRecord
	readErr   map[string]error
	hasPaths  map[string]bool
	hasScores map[string]bool
	writeErr  map[string]error
	fileCount map[string]int
	written   []string
}

var _ ports.DatasetRepository = (*fakeRepo)(nil)

func newFakeRepo(root string, dirs ...string) *fakeRepo {
	sorted := append([]string(nil), dirs...)
	sort.Strings(sorted)
	return &fakeRepo{
		root:      root,
		dirs:      sorted,
		records:   map[string][]domain.AudioRecord{},
		readErr:   map[string]error{},
		hasPaths:  map[string]bool{},
		hasScores: map[string]bool{},
		writeErr:  map[string]error{},
		fileCount: map[string]int{},
	}
}

func (f *fakeRepo) Discover(root string) ([]string, error) {
	if root != f.root {
		return nil, errBadRoot
	}
	return f.dirs, nil
}

func (f *fakeRepo) ListSubdirs(root string) ([]string, error) {
	if root != f.root {
		return nil, errBadRoot
	}
	return f.dirs, nil
}

func (f *fakeRepo) ReadPair(dir string) ([]domain.AudioRecord, error) {
	if err := f.readErr[dir]; err != nil {
		return nil, err
	}
	return f.records[dir], nil
}

func (f *fakeRepo) HasPathManifest(dir string) bool  { return f.hasPaths[dir] }
func (f *fakeRepo) HasScoreManifest(dir string) bool { return f.hasScores[dir] }

func (f *fakeRepo) WritePathManifest(dir string) (int, error) {
	if err := f.writeErr[dir]; err != nil {
		return 0, err
	}
	f.written = append(f.written, dir)
	f.hasPaths[dir] = true
	return f.fileCount[dir], nil
}

// fakeScorer is an in-memory ports.Scorer.
type fakeScorer struct {
	available bool
	failDirs  map[string]error
	hook      func(ctx context.Context, dir string) error
	calls     []string
}

var _ ports.Scorer = (*fakeScorer)(nil)

func newFakeScorer() *fakeScorer {
	return &fakeScorer{available: true, failDirs: map[string]error{}}
}

func (f *fakeScorer) ScoreDirectory(ctx context.Context, dir string, batchSize int) (string, error) {
	f.calls = append(f.calls, dir)
	if f.hook != nil {
		if err := f.hook(ctx, dir); err != nil {
			return "", err
		}
	}
	if err := f.failDirs[dir]; err != nil {
		return "", err
	}
	return "scored " + dir, nil
}

func (f *fakeScorer) IsAvailable() bool { return f.available }
