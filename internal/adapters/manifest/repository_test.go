package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mkdir(t *testing.T, root string, parts ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	return dir
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
}

func TestDiscover_FindsNestedManifestDirs(t *testing.T) {
	root := t.TempDir()

	b := mkdir(t, root, "set-b")
	a := mkdir(t, root, "set-a")
	nested := mkdir(t, root, "set-c", "session-1")
	mkdir(t, root, "empty") // no manifest, must not appear

	for _, dir := range []string{a, b, nested} {
		touch(t, dir, PathsFilename)
	}

	repo := NewRepository()
	dirs, err := repo.Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	want := []string{a, b, nested}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("Discover() = %v, want lexicographic %v", dirs, want)
	}
}

func TestDiscover_RootMissing(t *testing.T) {
	_, err := NewRepository().Discover(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestListSubdirs_ImmediateOnly(t *testing.T) {
	root := t.TempDir()
	a := mkdir(t, root, "a")
	b := mkdir(t, root, "b")
	mkdir(t, root, "b", "nested")
	touch(t, root, "loose.wav")

	dirs, err := NewRepository().ListSubdirs(root)
	if err != nil {
		t.Fatalf("ListSubdirs failed: %v", err)
	}
	if !reflect.DeepEqual(dirs, []string{a, b}) {
		t.Errorf("ListSubdirs() = %v, want [%s %s]", dirs, a, b)
	}
}

func TestWritePathManifest(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.wav")
	touch(t, dir, "a.wav")
	touch(t, dir, "C.WAV")
	touch(t, dir, "notes.trn")
	mkdir(t, dir, "sub")

	repo := NewRepository()
	count, err := repo.WritePathManifest(dir)
	if err != nil {
		t.Fatalf("WritePathManifest failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 entries, got %d", count)
	}

	data, err := os.ReadFile(filepath.Join(dir, PathsFilename))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 manifest lines, got %d", len(lines))
	}

	var names []string
	for _, line := range lines {
		var pl pathLine
		if err := json.Unmarshal([]byte(line), &pl); err != nil {
			t.Fatalf("manifest line is not valid JSON: %v", err)
		}
		if !filepath.IsAbs(filepath.FromSlash(pl.Path)) {
			t.Errorf("expected absolute path, got %s", pl.Path)
		}
		if strings.Contains(pl.Path, "\\") {
			t.Errorf("expected forward slashes, got %s", pl.Path)
		}
		names = append(names, filepath.Base(pl.Path))
	}

	// Lexicographic, extension match case-insensitive
	want := []string{"C.WAV", "a.wav", "b.wav"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("manifest order = %v, want %v", names, want)
	}
}

func TestWritePathManifest_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	count, err := NewRepository().WritePathManifest(dir)
	if err != nil {
		t.Fatalf("WritePathManifest failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 entries, got %d", count)
	}
	if _, err := os.Stat(filepath.Join(dir, PathsFilename)); err != nil {
		t.Errorf("expected empty manifest to exist: %v", err)
	}
}

func TestWritePathManifest_Idempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wav")

	repo := NewRepository()
	if _, err := repo.WritePathManifest(dir); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	first, _ := os.ReadFile(filepath.Join(dir, PathsFilename))

	if _, err := repo.WritePathManifest(dir); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	second, _ := os.ReadFile(filepath.Join(dir, PathsFilename))

	if string(first) != string(second) {
		t.Error("expected byte-identical manifest on rewrite")
	}

	// The manifest itself must not be indexed as an audio file
	if strings.Contains(string(second), PathsFilename) {
		t.Error("manifest lists itself")
	}
}
