package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"audiorev/internal/domain"
)

func TestWriteSQLite(t *testing.T) {
	records := []domain.AudioRecord{
		{
			Filename:  "a.wav",
			Path:      "/audio/a.wav",
			SourceDir: "/data/batch1",
			Scores:    domain.Scores{"CE": 3.5, "PQ": 4.25, "SNR": 18.0},
		},
		{
			Filename:  "b.wav",
			Path:      "/audio/b.wav",
			SourceDir: "/data/batch2",
			Scores:    domain.Scores{"CU": 2.0},
		},
	}

	dbPath := filepath.Join(t.TempDir(), "export.db")
	if err := WriteSQLite(dbPath, records); err != nil {
		t.Fatalf("WriteSQLite() error = %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open exported database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("records table has %d rows, want 2", count)
	}

	var filename, sourceDir, scoresJSON string
	var ce, pq sql.NullFloat64
	err = db.QueryRow(`
		SELECT filename, source_dir, ce, pq, scores
		FROM records WHERE path = ?
	`, "/audio/a.wav").Scan(&filename, &sourceDir, &ce, &pq, &scoresJSON)
	if err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if filename != "a.wav" || sourceDir != "/data/batch1" {
		t.Errorf("row = %q %q, want a.wav /data/batch1", filename, sourceDir)
	}
	if !ce.Valid || ce.Float64 != 3.5 || !pq.Valid || pq.Float64 != 4.25 {
		t.Errorf("ce = %+v pq = %+v, want 3.5 and 4.25", ce, pq)
	}
	if scoresJSON == "" {
		t.Error("scores JSON column is empty")
	}

	// Metrics absent from a record export as NULL.
	err = db.QueryRow("SELECT ce FROM records WHERE path = ?", "/audio/b.wav").Scan(&ce)
	if err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if ce.Valid {
		t.Errorf("ce for b.wav = %v, want NULL", ce.Float64)
	}
}

func TestWriteSQLite_ReplacesExisting(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "export.db")
	first := []domain.AudioRecord{
		{Filename: "a.wav", Path: "/audio/a.wav", SourceDir: "/data"},
		{Filename: "b.wav", Path: "/audio/b.wav", SourceDir: "/data"},
	}
	if err := WriteSQLite(dbPath, first); err != nil {
		t.Fatalf("first WriteSQLite() error = %v", err)
	}
	if err := WriteSQLite(dbPath, first[:1]); err != nil {
		t.Fatalf("second WriteSQLite() error = %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("records table has %d rows after re-export, want 1", count)
	}
}
