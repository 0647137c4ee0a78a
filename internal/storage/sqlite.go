package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"graphcheck/internal/assertion"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			document TEXT,
			version TEXT,
			check_count INTEGER,
			violated_checks INTEGER,
			violation_count INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS checks (
			run_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (run_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS violations (
			run_id INTEGER NOT NULL,
			check_name TEXT NOT NULL,
			entity_id TEXT,
			message TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_violations_run ON violations(run_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun archives one report and returns the run id.
func (s *SQLiteStore) SaveRun(ctx context.Context, report *assertion.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, document, version, check_count, violated_checks, violation_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, time.Now().UTC().Format(time.RFC3339), report.Document, report.Version,
		report.Summary.CheckCount, report.Summary.ViolatedChecks, report.Summary.ViolationCount)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	checkStmt, err := tx.PrepareContext(ctx, `INSERT INTO checks (run_id, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer checkStmt.Close()

	vioStmt, err := tx.PrepareContext(ctx, `INSERT INTO violations (run_id, check_name, entity_id, message) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer vioStmt.Close()

	for i, check := range report.Checks {
		if _, err := checkStmt.Exec(runID, check.Name, i); err != nil {
			return 0, err
		}
		for _, v := range check.Violations {
			if _, err := vioStmt.Exec(runID, check.Name, v.EntityID, v.Message); err != nil {
				return 0, err
			}
		}
	}

	return runID, tx.Commit()
}

// ListRuns returns archived runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, document, check_count, violated_checks, violation_count
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Document, &r.CheckCount, &r.ViolatedChecks, &r.ViolationCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun rebuilds the report archived under the given run id.
func (s *SQLiteStore) LoadRun(ctx context.Context, id int64) (*assertion.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT created_at, document, version FROM runs WHERE id = ?`, id)

	report := &assertion.Report{}
	if err := row.Scan(&report.GeneratedAt, &report.Document, &report.Version); err != nil {
		return nil, err
	}

	checkRows, err := s.db.QueryContext(ctx, `SELECT name FROM checks WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer checkRows.Close()

	byName := map[string]int{}
	for checkRows.Next() {
		var name string
		if err := checkRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		byName[name] = len(report.Checks)
		report.Checks = append(report.Checks, assertion.CheckResult{Name: name})
	}
	if err := checkRows.Err(); err != nil {
		return nil, err
	}

	vioRows, err := s.db.QueryContext(ctx, `SELECT check_name, entity_id, message FROM violations WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer vioRows.Close()

	for vioRows.Next() {
		var checkName string
		var v assertion.CheckViolation
		if err := vioRows.Scan(&checkName, &v.EntityID, &v.Message); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		i, ok := byName[checkName]
		if !ok {
			byName[checkName] = len(report.Checks)
			i = len(report.Checks)
			report.Checks = append(report.Checks, assertion.CheckResult{Name: checkName})
		}
		report.Checks[i].Violations = append(report.Checks[i].Violations, v)
	}
	if err := vioRows.Err(); err != nil {
		return nil, err
	}

	violated, total := 0, 0
	for _, c := range report.Checks {
		if c.Violated() {
			violated++
		}
		total += len(c.Violations)
	}
	report.Summary = assertion.ReportSummary{
		CheckCount:     len(report.Checks),
		ViolatedChecks: violated,
		ViolationCount: total,
	}

	return report, nil
}
