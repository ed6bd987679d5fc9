package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists advisory runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the advisor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS advisory_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			scenario_id    TEXT,
			scenario_name  TEXT,
			resolution     TEXT,
			samples        INTEGER,
			partial        INTEGER,
			gap_count      INTEGER,
			windows_found  INTEGER,
			best_start     INTEGER,
			best_end       INTEGER,
			best_score     REAL,
			best_rationale TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON advisory_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS candidate_windows (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			position      INTEGER NOT NULL,
			window_start  INTEGER,
			window_end    INTEGER,
			score         REAL,
			rationale     TEXT,
			FOREIGN KEY (run_id) REFERENCES advisory_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_windows_run ON candidate_windows(run_id)`,

		`CREATE TABLE IF NOT EXISTS run_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			stage     TEXT,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON run_failures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bestStart, bestEnd int64
	var bestScore float64
	var bestRationale string
	if len(run.Windows) > 0 {
		best := run.Windows[0]
		bestStart = best.Start.Unix()
		bestEnd = best.End.Unix()
		bestScore = best.Score
		bestRationale = best.Rationale
	}

	res, err := r.db.Exec(`INSERT INTO advisory_runs
		(timestamp, scenario_id, scenario_name, resolution, samples, partial, gap_count,
		 windows_found, best_start, best_end, best_score, best_rationale)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.ScenarioID, run.ScenarioName, run.Resolution,
		run.Samples, run.Partial, run.GapCount,
		len(run.Windows), bestStart, bestEnd, bestScore, bestRationale,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for rank, w := range run.Windows {
		if _, err := r.db.Exec(`INSERT INTO candidate_windows
			(run_id, position, window_start, window_end, score, rationale)
			VALUES (?,?,?,?,?,?)`,
			runID, rank+1, w.Start.Unix(), w.End.Unix(), w.Score, w.Rationale,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFailure(stage, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO run_failures (timestamp, stage, message) VALUES (?,?,?)`,
		time.Now().Unix(), stage, message)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
