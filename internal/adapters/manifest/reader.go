package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audiorev/internal/domain"
)

// Manifest file names within each dataset directory
const (
	PathsFilename  = "paths.jsonl"
	ScoresFilename = "scores.jsonl"
)

// maxLineBytes caps one manifest line. Paths and score objects are short;
// 1 MiB leaves generous headroom.
const maxLineBytes = 1 << 20

// pathLine is one line of the path manifest.
type pathLine struct {
	Path string `json:"path"`
}

// ReadPair reads the directory's manifest pair and merges them
// positionally into records. The read is pure: manifests are never
// mutated.
//
// Recoverable states map to the domain error taxonomy: no path manifest
// returns domain.ErrManifestMissing, no score manifest returns
// domain.ErrScoresMissing, and a broken pair (line-count disagreement or
// an unparsable line) returns *domain.ManifestMismatchError.
func (r *Repository) ReadPair(dir string) ([]domain.AudioRecord, error) {
	pathsFile := filepath.Join(dir, PathsFilename)
	scoresFile := filepath.Join(dir, ScoresFilename)

	if !fileExists(pathsFile) {
		return nil, domain.ErrManifestMissing
	}
	paths, err := readPathLines(pathsFile, dir)
	if err != nil {
		return nil, err
	}

	if !fileExists(scoresFile) {
		return nil, domain.ErrScoresMissing
	}
	scores, err := readScoreLines(scoresFile, dir)
	if err != nil {
		return nil, err
	}

	if len(paths) != len(scores) {
		return nil, &domain.ManifestMismatchError{
			Dir:    dir,
			Detail: fmt.Sprintf("%d path lines vs %d score lines", len(paths), len(scores)),
		}
	}

	records := make([]domain.AudioRecord, 0, len(paths))
	for i, p := range paths {
		records = append(records, domain.AudioRecord{
			Filename:  filepath.Base(p),
			Path:      p,
			SourceDir: dir,
			Scores:    scores[i],
		})
	}
	return records, nil
}

func readPathLines(file, dir string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var pl pathLine
		if err := json.Unmarshal([]byte(line), &pl); err != nil {
			return nil, &domain.ManifestMismatchError{Dir: dir, Line: lineNum, Detail: "invalid JSON in " + PathsFilename}
		}
		if pl.Path == "" {
			return nil, &domain.ManifestMismatchError{Dir: dir, Line: lineNum, Detail: "missing path field in " + PathsFilename}
		}
		paths = append(paths, pl.Path)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return paths, nil
}

func readScoreLines(file, dir string) ([]domain.Scores, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	var scores []domain.Scores
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// Null metric values are tolerated and treated as absent.
		var raw map[string]*float64
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, &domain.ManifestMismatchError{Dir: dir, Line: lineNum, Detail: "invalid JSON in " + ScoresFilename}
		}
		s := make(domain.Scores, len(raw))
		for metric, v := range raw {
			if v != nil {
				s[metric] = *v
			}
		}
		scores = append(scores, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return scores, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
