package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the on-disk shape of an exported file list.
type Format string

const (
	// FormatTxt writes one absolute path per line.
	FormatTxt Format = "txt"
	// FormatJSONL writes one {"path": ...} object per line, the same shape
	// as a path manifest, so an exported list can seed another tool.
	FormatJSONL Format = "jsonl"
)

// ParseFormat maps a user-supplied format name (or file extension) to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "txt":
		return FormatTxt, nil
	case "jsonl":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unknown list format %q (want txt or jsonl)", s)
	}
}

type listLine struct {
	Path string `json:"path"`
}

// WriteList writes the paths to outPath in the given format, overwriting
// any existing file.
func WriteList(outPath string, format Format, paths []string) error {
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create list file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, p := range paths {
		switch format {
		case FormatJSONL:
			line, err := json.Marshal(listLine{Path: p})
			if err != nil {
				return fmt.Errorf("failed to encode list line: %w", err)
			}
			w.Write(line)
			w.WriteByte('\n')
		case FormatTxt:
			w.WriteString(p)
			w.WriteByte('\n')
		default:
			return fmt.Errorf("unknown list format %q", format)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write list file: %w", err)
	}
	return nil
}

// ReadList reads a previously exported list, detecting the format from the
// file extension. Blank lines are skipped.
func ReadList(inPath string) ([]string, error) {
	format, err := ParseFormat(filepath.Ext(inPath))
	if err != nil {
		return nil, err
	}

	file, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if format == FormatJSONL {
			var entry listLine
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				return nil, fmt.Errorf("invalid list line %q: %w", line, err)
			}
			paths = append(paths, entry.Path)
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	return paths, nil
}
