// Copyright Crestline Operations Inc., 2026. All rights reserved.

package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/crestline/opsbrain/pkg/types"
)

// Export is the full records snapshot written by ExportYAML/ExportJSON.
type Export struct {
	Documents []types.KnowledgeDoc `json:"documents" yaml:"documents"`
	Issues    []types.Issue        `json:"issues" yaml:"issues"`
}

// ExportYAML writes every document and issue to dataDir/index/records.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	export, err := s.exportAll(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dataDir, indexDir, "records.yaml"), data, 0o644)
}

// ExportJSON writes every document and issue to dataDir/index/records.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	export, err := s.exportAll(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dataDir, indexDir, "records.json"), data, 0o644)
}

func (s *Store) exportAll(ctx context.Context) (Export, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	issues, err := s.Issues(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	return Export{Documents: docs, Issues: issues}, nil
}
