package export

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"audiorev/internal/domain"
)

// WriteSQLite writes the records to a SQLite database at dbPath, replacing
// the records table if the file already holds one. The four common metrics
// get their own nullable columns for direct SQL filtering; the full open
// metric set is kept as JSON in the scores column.
func WriteSQLite(dbPath string, records []domain.AudioRecord) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		DROP TABLE IF EXISTS records;
		CREATE TABLE records (
			path TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			source_dir TEXT NOT NULL,
			ce REAL,
			cu REAL,
			pc REAL,
			pq REAL,
			scores TEXT NOT NULL
		);
		CREATE INDEX idx_records_filename ON records(filename);
	`)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO records (path, filename, source_dir, ce, cu, pc, pq, scores)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		scoresJSON, err := json.Marshal(r.Scores)
		if err != nil {
			return fmt.Errorf("failed to encode scores for %s: %w", r.Path, err)
		}
		_, err = stmt.Exec(
			r.Path, r.Filename, r.SourceDir,
			metricValue(r, "CE"), metricValue(r, "CU"),
			metricValue(r, "PC"), metricValue(r, "PQ"),
			string(scoresJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func metricValue(r domain.AudioRecord, name string) sql.NullFloat64 {
	v, ok := r.Metric(name)
	return sql.NullFloat64{Float64: v, Valid: ok}
}
