// Package backup creates, indexes, restores, and prunes profile file
// backups. Payloads live as plain files under the backup root; their
// metadata lives in a SQLite index so listing never reads payloads.
package backup

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tstetson/fieldtuner/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS backups (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name     TEXT NOT NULL UNIQUE,
	original_path TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	size          INTEGER NOT NULL,
	checksum      TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backups_original ON backups(original_path);
CREATE INDEX IF NOT EXISTS idx_backups_created ON backups(created_at);
`

// Record is the append-only metadata of one backup. It is never
// mutated after creation; rows disappear only through retention
// cleanup or explicit deletion.
type Record struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalPath string    `json:"original_path"`
	Description  string    `json:"description"`
	Size         int64     `json:"size"`
	Checksum     string    `json:"checksum"`
	CreatedAt    time.Time `json:"created_at"`
}

// DB wraps a sql.DB with backup-index operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite index and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("backup: open index: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("backup: ping index: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("backup: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Insert records a new backup and returns its assigned ID.
func (db *DB) Insert(r Record) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO backups (file_name, original_path, description, size, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.FileName, r.OriginalPath, r.Description, r.Size, r.Checksum, r.CreatedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("backup: insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("backup: last id: %w", err)
	}
	return id, nil
}

// Get returns the record with the given ID.
func (db *DB) Get(id int64) (Record, error) {
	row := db.conn.QueryRow(`
		SELECT id, file_name, original_path, description, size, checksum, created_at
		FROM backups WHERE id = ?
	`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("backup %d: %w", id, apperr.ErrNotFound)
	}
	return r, err
}

// List returns all records newest first, optionally filtered by the
// original profile path. Safe to call repeatedly; reads only the index.
func (db *DB) List(originalPath string) ([]Record, error) {
	query := `
		SELECT id, file_name, original_path, description, size, checksum, created_at
		FROM backups`
	args := []any{}
	if originalPath != "" {
		query += ` WHERE original_path = ?`
		args = append(args, originalPath)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("backup: list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a record from the index.
func (db *DB) Delete(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM backups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("backup: delete record: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var r Record
	var created int64
	if err := s.Scan(&r.ID, &r.FileName, &r.OriginalPath, &r.Description, &r.Size, &r.Checksum, &created); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("backup: scan record: %w", err)
	}
	r.CreatedAt = time.Unix(0, created)
	return r, nil
}
