// Copyright Crestline Operations Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crestline/opsbrain/internal/intelligence"
	"github.com/crestline/opsbrain/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a noteworthy event in the intelligence index",
	Long: `Add inserts one event into the intelligence index and persists the
updated snapshot. Every producing subsystem maps to a source type:

  chat_query, issue_created, issue_status_change, resolved_issue,
  document_upload, knowledge, team_change, department_change,
  sop_created, voice_session, voice_interaction

Missing fields never block the insert: indexing is best-effort telemetry,
so an empty title or content is stored as-is. When the index exceeds its
capacity the oldest items are evicted.`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	sourceType, _ := cmd.Flags().GetString("source-type")
	sourceID, _ := cmd.Flags().GetString("source-id")
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	department, _ := cmd.Flags().GetString("department")
	tags, _ := cmd.Flags().GetStringArray("tag")
	boost, _ := cmd.Flags().GetInt("boost")
	metaPairs, _ := cmd.Flags().GetStringArray("meta")

	metadata, err := parseMetadata(metaPairs)
	if err != nil {
		return err
	}

	store, err := intelligence.LoadStore(cfg.Intelligence.DataDir, cfg.Intelligence.Capacity)
	if err != nil {
		return err
	}

	item := store.Add(types.Entry{
		SourceType:     types.SourceType(sourceType),
		SourceID:       sourceID,
		Title:          title,
		Content:        content,
		Department:     department,
		Tags:           tags,
		Metadata:       metadata,
		RelevanceBoost: boost,
	})

	if err := intelligence.SaveStore(cfg.Intelligence.DataDir, store); err != nil {
		return err
	}

	fmt.Printf("Indexed %s (%s) — %d/%d items\n", item.ID, item.SourceType, store.Len(), store.Capacity())
	if len(item.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(item.Tags, ", "))
	}
	return nil
}

// parseMetadata converts repeated key=value flags into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --meta %q: expected key=value", p)
		}
		meta[k] = v
	}
	return meta, nil
}

func init() {
	addCmd.Flags().String("source-type", string(types.SourceChatQuery), "producing subsystem tag")
	addCmd.Flags().String("source-id", "", "identifier of the originating record")
	addCmd.Flags().String("title", "", "short human-readable label")
	addCmd.Flags().String("content", "", "free-text body")
	addCmd.Flags().String("department", "", "department scope (empty = company-wide)")
	addCmd.Flags().StringArray("tag", nil, "keyword tag (repeatable)")
	addCmd.Flags().Int("boost", 0, "static relevance boost, typically 0-5")
	addCmd.Flags().StringArray("meta", nil, "opaque metadata key=value (repeatable)")

	rootCmd.AddCommand(addCmd)
}
