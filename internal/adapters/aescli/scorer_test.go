package aescli

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiorev/internal/adapters/manifest"
)

// stubScorer writes an executable shell script and returns a Scorer
// configured to run it.
func stubScorer(t *testing.T, script string) *Scorer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio-aes-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("failed to write stub script: %v", err)
	}
	return NewScorer(WithCommand(path))
}

func writePathManifest(t *testing.T, dir string, paths []string) {
	t.Helper()
	var b strings.Builder
	for _, p := range paths {
		line, err := json.Marshal(pathLine{Path: p})
		if err != nil {
			t.Fatalf("failed to marshal path line: %v", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, manifest.PathsFilename), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("failed to write path manifest: %v", err)
	}
}

func readScoreManifest(t *testing.T, dir string) []map[string]float64 {
	t.Helper()
	file, err := os.Open(filepath.Join(dir, manifest.ScoresFilename))
	if err != nil {
		t.Fatalf("failed to open score manifest: %v", err)
	}
	defer file.Close()

	var lines []map[string]float64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var scores map[string]float64
		if err := json.Unmarshal(scanner.Bytes(), &scores); err != nil {
			t.Fatalf("invalid score line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, scores)
	}
	return lines
}

func TestScorer_ScoreDirectory(t *testing.T) {
	// Echoes one fixed score object per input line.
	scorer := stubScorer(t, `while IFS= read -r line; do echo '{"CE":1.5,"PQ":4.0}'; done`)

	dir := t.TempDir()
	writePathManifest(t, dir, []string{"/audio/a.wav", "/audio/b.wav", "/audio/c.wav"})

	detail, err := scorer.ScoreDirectory(context.Background(), dir, 2)
	if err != nil {
		t.Fatalf("ScoreDirectory() error = %v", err)
	}
	if !strings.Contains(detail, "3 files") || !strings.Contains(detail, "2 batches") {
		t.Errorf("detail = %q, want 3 files in 2 batches", detail)
	}

	scores := readScoreManifest(t, dir)
	if len(scores) != 3 {
		t.Fatalf("score manifest has %d lines, want 3", len(scores))
	}
	if scores[0]["CE"] != 1.5 || scores[0]["PQ"] != 4.0 {
		t.Errorf("first score line = %v, want CE 1.5 PQ 4.0", scores[0])
	}
}

func TestScorer_CommandFailureSurfacesStderr(t *testing.T) {
	scorer := stubScorer(t, `echo "model checkpoint missing" >&2; exit 1`)

	dir := t.TempDir()
	writePathManifest(t, dir, []string{"/audio/a.wav"})

	_, err := scorer.ScoreDirectory(context.Background(), dir, 10)
	if err == nil {
		t.Fatal("expected error from failing command")
	}
	if !strings.Contains(err.Error(), "model checkpoint missing") {
		t.Errorf("error = %v, want command stderr included", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, manifest.ScoresFilename)); !os.IsNotExist(statErr) {
		t.Error("score manifest written despite command failure")
	}
}

func TestScorer_LineCountMismatch(t *testing.T) {
	// Emits a single line regardless of input length.
	scorer := stubScorer(t, `echo '{"CE":1.0}'; cat > /dev/null`)

	dir := t.TempDir()
	writePathManifest(t, dir, []string{"/audio/a.wav", "/audio/b.wav"})

	_, err := scorer.ScoreDirectory(context.Background(), dir, 10)
	if err == nil || !strings.Contains(err.Error(), "score lines") {
		t.Errorf("error = %v, want line count mismatch", err)
	}
}

func TestScorer_InvalidOutputLine(t *testing.T) {
	scorer := stubScorer(t, `while IFS= read -r line; do echo 'not json'; done`)

	dir := t.TempDir()
	writePathManifest(t, dir, []string{"/audio/a.wav"})

	_, err := scorer.ScoreDirectory(context.Background(), dir, 10)
	if err == nil || !strings.Contains(err.Error(), "invalid score line") {
		t.Errorf("error = %v, want invalid score line", err)
	}
}

func TestScorer_MissingPathManifest(t *testing.T) {
	scorer := stubScorer(t, `cat > /dev/null`)

	_, err := scorer.ScoreDirectory(context.Background(), t.TempDir(), 10)
	if err == nil {
		t.Fatal("expected error for missing path manifest")
	}
}

func TestScorer_EmptyPathManifest(t *testing.T) {
	scorer := stubScorer(t, `cat > /dev/null`)

	dir := t.TempDir()
	writePathManifest(t, dir, nil)

	_, err := scorer.ScoreDirectory(context.Background(), dir, 10)
	if err == nil || !strings.Contains(err.Error(), "no files") {
		t.Errorf("error = %v, want empty manifest rejected", err)
	}
}

func TestScorer_Canceled(t *testing.T) {
	scorer := stubScorer(t, `while IFS= read -r line; do echo '{"CE":1.0}'; done`)

	dir := t.TempDir()
	writePathManifest(t, dir, []string{"/audio/a.wav"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scorer.ScoreDirectory(ctx, dir, 10)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if _, statErr := os.Stat(filepath.Join(dir, manifest.ScoresFilename)); !os.IsNotExist(statErr) {
		t.Error("score manifest written despite cancellation")
	}
}

func TestScorer_IsAvailable(t *testing.T) {
	if NewScorer(WithCommand("definitely-not-on-path-12345")).IsAvailable() {
		t.Error("IsAvailable() = true for a command that does not exist")
	}
	if !NewScorer(WithCommand("sh")).IsAvailable() {
		t.Error("IsAvailable() = false for sh")
	}
}
