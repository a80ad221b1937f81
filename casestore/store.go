// Package casestore persists cases and the evidence items triaged under
// them in a local SQLite database.
package casestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Schema for the case/evidence store.
const schema = `
CREATE TABLE IF NOT EXISTS cases (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    description TEXT,
    created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS evidence (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    case_id     INTEGER NOT NULL REFERENCES cases(id),
    type        TEXT NOT NULL,
    value       TEXT NOT NULL,
    verdict     TEXT NOT NULL,
    risk_score  INTEGER NOT NULL,
    sha256      TEXT,
    report_path TEXT,
    created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evidence_case ON evidence(case_id);
CREATE INDEX IF NOT EXISTS idx_evidence_sha256 ON evidence(sha256);
`

// ErrNotFound is returned when a case or evidence row does not exist.
var ErrNotFound = errors.New("not found")

// Case groups evidence items belonging to one investigation.
type Case struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// Evidence is one triaged item recorded under a case.
type Evidence struct {
	ID         int64
	CaseID     int64
	Type       string // "file", "url", ...
	Value      string // path or identifier
	Verdict    string
	RiskScore  int
	SHA256     string
	ReportPath string
	CreatedAt  time.Time
}

// Store is the SQLite-backed case/evidence store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCase inserts a new case and returns its id.
func (s *Store) CreateCase(name, description string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO cases (name, description, created_at) VALUES (?, ?, ?)`,
		name, description, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("create case: %w", err)
	}
	return res.LastInsertId()
}

// FindCaseByName returns the most recently created case with the given
// name, or ErrNotFound.
func (s *Store) FindCaseByName(name string) (*Case, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, created_at FROM cases WHERE name = ? ORDER BY id DESC LIMIT 1`,
		name,
	)
	return scanCase(row)
}

// GetCase returns the case with the given id, or ErrNotFound.
func (s *Store) GetCase(id int64) (*Case, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, created_at FROM cases WHERE id = ?`,
		id,
	)
	return scanCase(row)
}

func scanCase(row *sql.Row) (*Case, error) {
	var c Case
	var created int64
	err := row.Scan(&c.ID, &c.Name, &c.Description, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan case: %w", err)
	}
	c.CreatedAt = time.Unix(created, 0).UTC()
	return &c, nil
}

// AddEvidence records one evidence item under a case and returns its id.
func (s *Store) AddEvidence(ev Evidence) (int64, error) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO evidence (case_id, type, value, verdict, risk_score, sha256, report_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.CaseID, ev.Type, ev.Value, ev.Verdict, ev.RiskScore, ev.SHA256, ev.ReportPath, ev.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("add evidence: %w", err)
	}
	return res.LastInsertId()
}

// ListEvidence returns every evidence item recorded under the case, in
// insertion order.
func (s *Store) ListEvidence(caseID int64) ([]Evidence, error) {
	rows, err := s.db.Query(
		`SELECT id, case_id, type, value, verdict, risk_score, sha256, report_path, created_at
		 FROM evidence WHERE case_id = ? ORDER BY id`,
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var items []Evidence
	for rows.Next() {
		var ev Evidence
		var created int64
		if err := rows.Scan(&ev.ID, &ev.CaseID, &ev.Type, &ev.Value, &ev.Verdict,
			&ev.RiskScore, &ev.SHA256, &ev.ReportPath, &created); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		ev.CreatedAt = time.Unix(created, 0).UTC()
		items = append(items, ev)
	}
	return items, rows.Err()
}
