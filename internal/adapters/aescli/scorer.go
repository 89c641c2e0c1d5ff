package aescli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"audiorev/internal/adapters/manifest"
	"audiorev/internal/ports"
)

// DefaultCommand is the audio aesthetics scoring CLI looked up on PATH.
const DefaultCommand = "audio-aes"

// Scorer implements ports.Scorer by shelling out to the audio-aes CLI.
// Paths are fed as JSONL on stdin in batches; the command writes one JSON
// score object per line on stdout, in input order.
type Scorer struct {
	command string
	args    []string
}

var _ ports.Scorer = (*Scorer)(nil)

// Option configures the Scorer
type Option func(*Scorer)

// WithCommand overrides the scoring executable and its fixed arguments
func WithCommand(command string, args ...string) Option {
	return func(s *Scorer) {
		s.command = command
		s.args = args
	}
}

// NewScorer creates a new audio-aes scorer
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{command: DefaultCommand}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAvailable checks if the scoring command is installed and accessible
func (s *Scorer) IsAvailable() bool {
	_, err := exec.LookPath(s.command)
	return err == nil
}

// pathLine mirrors one line of a path manifest.
type pathLine struct {
	Path string `json:"path"`
}

// ScoreDirectory scores every path listed in the directory's path manifest
// and writes the score manifest next to it. The manifest is written with a
// temp-file rename after all batches complete, so a failed or canceled run
// never leaves a partial scores file behind.
func (s *Scorer) ScoreDirectory(ctx context.Context, dir string, batchSize int) (string, error) {
	paths, err := readPathManifest(dir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("path manifest in %s lists no files", dir)
	}
	if batchSize <= 0 {
		batchSize = len(paths)
	}

	var scoreLines []string
	batches := 0
	for start := 0; start < len(paths); start += batchSize {
		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		lines, err := s.runBatch(ctx, paths[start:end])
		if err != nil {
			return "", err
		}
		scoreLines = append(scoreLines, lines...)
		batches++
	}

	if err := writeScoreManifest(dir, scoreLines); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d files scored in %d batches", len(paths), batches), nil
}

// runBatch invokes the command once with the batch paths on stdin and
// returns the validated score lines in input order.
func (s *Scorer) runBatch(ctx context.Context, paths []string) ([]string, error) {
	var stdin bytes.Buffer
	enc := json.NewEncoder(&stdin)
	for _, p := range paths {
		if err := enc.Encode(pathLine{Path: p}); err != nil {
			return nil, fmt.Errorf("failed to encode batch input: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, s.command, s.args...)
	cmd.Stdin = &stdin
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s error: %s", s.command, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s error: %w", s.command, err)
	}

	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var scores map[string]*float64
		if err := json.Unmarshal([]byte(line), &scores); err != nil {
			return nil, fmt.Errorf("%s wrote an invalid score line: %w (line: %s)", s.command, err, line)
		}
		lines = append(lines, line)
	}
	if len(lines) != len(paths) {
		return nil, fmt.Errorf("%s wrote %d score lines for %d paths", s.command, len(lines), len(paths))
	}
	return lines, nil
}

func readPathManifest(dir string) ([]string, error) {
	file, err := os.Open(filepath.Join(dir, manifest.PathsFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to open path manifest: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry pathLine
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("invalid path manifest line: %w", err)
		}
		paths = append(paths, entry.Path)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read path manifest: %w", err)
	}
	return paths, nil
}

func writeScoreManifest(dir string, lines []string) error {
	tmp, err := os.CreateTemp(dir, ".scores-*.jsonl")
	if err != nil {
		return fmt.Errorf("failed to create score manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, line := range lines {
		if _, err := fmt.Fprintln(tmp, line); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write score manifest: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close score manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, manifest.ScoresFilename)); err != nil {
		return fmt.Errorf("failed to finalize score manifest: %w", err)
	}
	return nil
}
