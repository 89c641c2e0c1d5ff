package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"audiorev/internal/domain"
)

func rec(dir, name string, scores domain.Scores) domain.AudioRecord {
	return domain.AudioRecord{
		Filename:  name,
		Path:      dir + "/" + name,
		SourceDir: dir,
		Scores:    scores,
	}
}

func TestLoadCommand_Execute(t *testing.T) {
	repo := newFakeRepo("/data", "/data/a", "/data/b")
	repo.records["/data/a"] = []domain.AudioRecord{
		rec("/data/a", "one.wav", domain.Scores{"CE": 3.1, "PQ": 4.0}),
		rec("/data/a", "two.wav", domain.Scores{"CE": 2.2}),
	}
	repo.records["/data/b"] = []domain.AudioRecord{
		rec("/data/b", "three.wav", nil),
	}

	result, err := NewLoadCommand(repo, "/data").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.DirsScanned != 2 {
		t.Errorf("DirsScanned = %d, want 2", result.DirsScanned)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", result.Diagnostics)
	}

	got := result.Index.Records()
	wantPaths := []string{"/data/a/one.wav", "/data/a/two.wav", "/data/b/three.wav"}
	if len(got) != len(wantPaths) {
		t.Fatalf("got %d records, want %d", len(got), len(wantPaths))
	}
	for i, p := range wantPaths {
		if got[i].Path != p {
			t.Errorf("record %d path = %q, want %q", i, got[i].Path, p)
		}
	}
}

func TestLoadCommand_RootErrorAborts(t *testing.T) {
	repo := newFakeRepo("/data", "/data/a")

	_, err := NewLoadCommand(repo, "/elsewhere").Execute(context.Background())
	if err == nil {
		t.Fatal("expected error for unreadable root")
	}
}

func TestLoadCommand_BadDirectoryBecomesDiagnostic(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind domain.DiagnosticKind
	}{
		{
			name:     "scores missing",
			err:      domain.ErrScoresMissing,
			wantKind: domain.DiagScoresMissing,
		},
		{
			name:     "count mismatch",
			err:      &domain.ManifestMismatchError{Dir: "/data/bad", Detail: "3 paths but 2 scores"},
			wantKind: domain.DiagMismatch,
		},
		{
			name:     "parse error",
			err:      &domain.ManifestMismatchError{Dir: "/data/bad", Line: 2, Detail: "invalid JSON"},
			wantKind: domain.DiagParseError,
		},
		{
			name:     "unexpected error",
			err:      errors.New("permission denied"),
			wantKind: domain.DiagParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo("/data", "/data/bad", "/data/good")
			repo.readErr["/data/bad"] = tt.err
			repo.records["/data/good"] = []domain.AudioRecord{
				rec("/data/good", "ok.wav", domain.Scores{"PQ": 4.5}),
			}

			result, err := NewLoadCommand(repo, "/data").Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if result.Index.Len() != 1 {
				t.Errorf("index has %d records, want 1 (good directory still indexed)", result.Index.Len())
			}
			if len(result.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
			}
			d := result.Diagnostics[0]
			if d.Kind != tt.wantKind {
				t.Errorf("diagnostic kind = %v, want %v", d.Kind, tt.wantKind)
			}
			if d.Dir != "/data/bad" {
				t.Errorf("diagnostic dir = %q, want %q", d.Dir, "/data/bad")
			}
		})
	}
}

func TestLoadCommand_DuplicatePathKeepsFirst(t *testing.T) {
	repo := newFakeRepo("/data", "/data/a", "/data/b")
	shared := "/audio/clip.wav"
	repo.records["/data/a"] = []domain.AudioRecord{
		{Filename: "clip.wav", Path: shared, SourceDir: "/data/a", Scores: domain.Scores{"CE": 1.0}},
	}
	repo.records["/data/b"] = []domain.AudioRecord{
		{Filename: "clip.wav", Path: shared, SourceDir: "/data/b", Scores: domain.Scores{"CE": 9.0}},
	}

	result, err := NewLoadCommand(repo, "/data").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Index.Len() != 1 {
		t.Fatalf("index has %d records, want 1", result.Index.Len())
	}
	kept, ok := result.Index.Lookup(shared)
	if !ok {
		t.Fatalf("Lookup(%q) not found", shared)
	}
	if kept.SourceDir != "/data/a" {
		t.Errorf("kept record from %q, want first occurrence /data/a", kept.SourceDir)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != domain.DiagDuplicatePath {
		t.Errorf("diagnostics = %v, want one duplicate-path entry", result.Diagnostics)
	}
}

func TestLoadCommand_Deterministic(t *testing.T) {
	repo := newFakeRepo("/data", "/data/a", "/data/b")
	repo.records["/data/a"] = []domain.AudioRecord{
		rec("/data/a", "one.wav", domain.Scores{"CE": 3.1}),
	}
	repo.records["/data/b"] = []domain.AudioRecord{
		rec("/data/b", "two.wav", domain.Scores{"CU": 2.0}),
	}

	first, err := NewLoadCommand(repo, "/data").Execute(context.Background())
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	second, err := NewLoadCommand(repo, "/data").Execute(context.Background())
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}

	if !reflect.DeepEqual(first.Index.Records(), second.Index.Records()) {
		t.Error("repeated loads over unchanged data produced different indexes")
	}
}

func TestLoadCommand_Canceled(t *testing.T) {
	repo := newFakeRepo("/data", "/data/a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoadCommand(repo, "/data").Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}
