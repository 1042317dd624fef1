package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Outcome values recorded per scan.
const (
	OutcomeClean     = "clean"
	OutcomeViolation = "violation"
)

// Entry is one recorded scan decision.
type Entry struct {
	ID        int64
	CreatedAt time.Time
	Event     string // which lifecycle event or verb triggered the scan
	Target    string // message file, branch range, or file count summary
	Findings  int
	Outcome   string
}

// Journal is an append-only record of scan decisions backed by sqlite.
// Writes are best-effort; a journal failure never changes a scan verdict.
type Journal struct {
	db     *sql.DB
	logger zerolog.Logger
}

const createTableStmt = `
CREATE TABLE IF NOT EXISTS scans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	event TEXT NOT NULL,
	target TEXT NOT NULL,
	findings INTEGER NOT NULL,
	outcome TEXT NOT NULL
)`

// Open opens (and if needed creates) the journal database at path.
func Open(path string, logger zerolog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, common.WrapError(err, "failed to create journal directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "failed to open journal database")
	}

	if _, err := db.Exec(createTableStmt); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "failed to initialize journal schema")
	}

	return &Journal{
		db:     db,
		logger: logger.With().Str("module", "Journal").Logger(),
	}, nil
}

// Record appends one scan decision.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Outcome == "" {
		e.Outcome = OutcomeClean
		if e.Findings > 0 {
			e.Outcome = OutcomeViolation
		}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO scans (created_at, event, target, findings, outcome)
		VALUES (?, ?, ?, ?, ?)`,
		e.CreatedAt.Format(time.RFC3339), e.Event, e.Target, e.Findings, e.Outcome)
	if err != nil {
		return common.WrapError(err, "failed to record scan")
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, created_at, event, target, findings, outcome
		FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "failed to query journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Event, &e.Target, &e.Findings, &e.Outcome); err != nil {
			return nil, common.WrapError(err, "failed to scan journal row")
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "failed to iterate journal rows")
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
