package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sparkforge/spark/internal/observability"
	"github.com/sparkforge/spark/internal/project"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

const selectRecordFields = `id, title, idea, tagline, data_json, mind_map_json, created_at, updated_at`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			idea TEXT,
			tagline TEXT,
			data_json TEXT NOT NULL,
			mind_map_json TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the projects table and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAllRecords(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading projects JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM projects"); err != nil {
		return 0, fmt.Errorf("clearing projects table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO projects (` + selectRecordFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing projects insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		dataJSON, err := json.Marshal(r.Data)
		if err != nil {
			return 0, fmt.Errorf("encoding data for %s: %w", r.ID, err)
		}
		var mindMapJSON sql.NullString
		if r.MindMap != nil {
			b, err := json.Marshal(r.MindMap)
			if err != nil {
				return 0, fmt.Errorf("encoding mind map for %s: %w", r.ID, err)
			}
			mindMapJSON = sql.NullString{String: string(b), Valid: true}
		}

		_, err = stmt.Exec(r.ID, r.Title, nullableStringValue(r.Idea), nullableStringValue(r.Data.Tagline),
			string(dataJSON), mindMapJSON, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return 0, fmt.Errorf("inserting project %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	observability.L().Debug("rebuilt project cache",
		zap.String("source", jsonlPath),
		zap.Int("records", len(records)))

	return len(records), nil
}

// GetRecordByID retrieves a record by its ID. Returns nil, nil when absent.
func (d *DB) GetRecordByID(id string) (*project.Record, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM projects WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// ListRecords returns records newest first. A limit of 0 or less means no limit.
func (d *DB) ListRecords(limit int) ([]project.Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM projects ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SearchRecords returns records whose title or idea contains query,
// case-insensitively, newest first.
func (d *DB) SearchRecords(query string, limit int) ([]project.Record, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	sqlQuery := `SELECT ` + selectRecordFields + ` FROM projects
		WHERE lower(title) LIKE ? ESCAPE '\' OR lower(idea) LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id`
	args := []any{pattern, pattern}
	if limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountRecords returns the total number of cached records.
func (d *DB) CountRecords() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*project.Record, error) {
	var (
		r                      project.Record
		idea, tagline, mindMap sql.NullString
		dataJSON               string
	)
	if err := s.Scan(&r.ID, &r.Title, &idea, &tagline, &dataJSON, &mindMap, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Idea = idea.String

	if err := json.Unmarshal([]byte(dataJSON), &r.Data); err != nil {
		return nil, fmt.Errorf("decoding data for %s: %w", r.ID, err)
	}
	if mindMap.Valid {
		if err := json.Unmarshal([]byte(mindMap.String), &r.MindMap); err != nil {
			return nil, fmt.Errorf("decoding mind map for %s: %w", r.ID, err)
		}
	}
	return &r, nil
}

func scanRecords(rows *sql.Rows) ([]project.Record, error) {
	var records []project.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// nullableStringValue maps "" to NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
