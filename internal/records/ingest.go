// Copyright Crestline Operations Inc., 2026. All rights reserved.

package records

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/crestline/opsbrain/pkg/types"
)

// RecordFile is the shape of a YAML seed file under dataDir/records/.
// One file may carry documents, issues, or both.
type RecordFile struct {
	Documents []types.KnowledgeDoc `yaml:"documents"`
	Issues    []types.Issue        `yaml:"issues"`
}

// IngestSummary holds counts from a records ingest run.
type IngestSummary struct {
	Ingested int
	Updated  int
	Skipped  int
	Failed   int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Updated + s.Skipped + s.Failed
}

// Ingest reads YAML record files from dataDir/records/ and upserts their
// documents and issues into the database. Files unchanged since the last
// run (by modification time) are skipped, so repeated ingests are cheap.
// Progress lines are written to w.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := filepath.Join(s.dataDir, recordsDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", dir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE file = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var rf RecordFile
		if err := yaml.Unmarshal(data, &rf); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, name, &rf, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		n := len(rf.Documents) + len(rf.Issues)
		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", name, n)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "ingested %s (%d records)\n", name, n)
			summary.Ingested++
		}
	}

	fmt.Fprintf(w, "\ningested: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Ingested, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, name string, rf *RecordFile, modTime string) error {
	for i := range rf.Documents {
		doc := rf.Documents[i]
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		if doc.UploadedAt.IsZero() {
			doc.UploadedAt = time.Now()
		}
		if err := s.PutDocument(ctx, doc); err != nil {
			return err
		}
	}

	for i := range rf.Issues {
		issue := rf.Issues[i]
		if issue.ID == "" {
			issue.ID = uuid.NewString()
		}
		if issue.Status == "" {
			issue.Status = types.IssueOpen
		}
		if issue.CreatedAt.IsZero() {
			issue.CreatedAt = time.Now()
		}
		if issue.Status == types.IssueResolved && issue.ResolvedAt.IsZero() {
			issue.ResolvedAt = time.Now()
		}
		if err := s.PutIssue(ctx, issue); err != nil {
			return err
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_status (file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}
	return nil
}
