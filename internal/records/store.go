// Copyright Crestline Operations Inc., 2026. All rights reserved.

// Package records persists the company's knowledge documents and issue
// tracker in SQLite and feeds them to the intelligence query engine as
// the two auxiliary candidate collections.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/crestline/opsbrain/pkg/types"
)

const (
	indexDir   = "index"
	recordsDir = "records"
	dbFile     = "opsbrain.db"
)

// Store manages the records SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the records database at
// dataDir/index/opsbrain.db, creating the schema if needed.
func NewStore(cfg types.RecordsConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT,
			department TEXT,
			tags TEXT,
			uploaded_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			department TEXT,
			status TEXT NOT NULL,
			priority TEXT,
			resolution TEXT,
			created_at TEXT,
			resolved_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// PutDocument upserts a knowledge document.
func (s *Store) PutDocument(ctx context.Context, doc types.KnowledgeDoc) error {
	tagsJSON, _ := json.Marshal(doc.Tags)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, content, department, tags, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, content=excluded.content,
			department=excluded.department, tags=excluded.tags,
			uploaded_at=excluded.uploaded_at`,
		doc.ID, doc.Title, doc.Content, doc.Department,
		string(tagsJSON), formatTime(doc.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

// PutIssue upserts an issue.
func (s *Store) PutIssue(ctx context.Context, issue types.Issue) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO issues (id, title, description, department, status, priority, resolution, created_at, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, description=excluded.description,
			department=excluded.department, status=excluded.status,
			priority=excluded.priority, resolution=excluded.resolution,
			created_at=excluded.created_at, resolved_at=excluded.resolved_at`,
		issue.ID, issue.Title, issue.Description, issue.Department,
		string(issue.Status), issue.Priority, issue.Resolution,
		formatTime(issue.CreatedAt), formatTime(issue.ResolvedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting issue %s: %w", issue.ID, err)
	}
	return nil
}

// Documents returns every knowledge document, newest upload first.
func (s *Store) Documents(ctx context.Context) ([]types.KnowledgeDoc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, department, tags, uploaded_at
		 FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.KnowledgeDoc
	for rows.Next() {
		var (
			doc        types.KnowledgeDoc
			content    sql.NullString
			department sql.NullString
			tagsJSON   sql.NullString
			uploadedAt sql.NullString
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &content, &department, &tagsJSON, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		doc.Content = content.String
		doc.Department = department.String
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &doc.Tags)
		}
		doc.UploadedAt = parseTime(uploadedAt.String)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ResolvedIssues returns issues with status "resolved", newest resolution
// first. Only resolved issues enter the intelligence candidate pool: an
// open problem is not yet knowledge.
func (s *Store) ResolvedIssues(ctx context.Context) ([]types.Issue, error) {
	return s.issuesWhere(ctx, `WHERE status = ? ORDER BY resolved_at DESC`, string(types.IssueResolved))
}

// Issues returns every issue regardless of status, newest first.
func (s *Store) Issues(ctx context.Context) ([]types.Issue, error) {
	return s.issuesWhere(ctx, `ORDER BY created_at DESC`)
}

func (s *Store) issuesWhere(ctx context.Context, clause string, args ...any) ([]types.Issue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, department, status, priority, resolution, created_at, resolved_at
		 FROM issues `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []types.Issue
	for rows.Next() {
		var (
			is                            types.Issue
			description, department       sql.NullString
			priority, resolution          sql.NullString
			status, createdAt, resolvedAt sql.NullString
		)
		if err := rows.Scan(&is.ID, &is.Title, &description, &department,
			&status, &priority, &resolution, &createdAt, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		is.Description = description.String
		is.Department = department.String
		is.Status = types.IssueStatus(status.String)
		is.Priority = priority.String
		is.Resolution = resolution.String
		is.CreatedAt = parseTime(createdAt.String)
		is.ResolvedAt = parseTime(resolvedAt.String)
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// ClearIssues deletes every issue and returns the number removed.
// Intelligence index entries that reference cleared issues are kept:
// orphan tolerance is the named, deliberate behavior of the index, which
// preserves historical knowledge over referential integrity.
func (s *Store) ClearIssues(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM issues`)
	if err != nil {
		return 0, fmt.Errorf("clearing issues: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
