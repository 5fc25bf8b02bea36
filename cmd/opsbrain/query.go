// Copyright Crestline Operations Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crestline/opsbrain/internal/intelligence"
	"github.com/crestline/opsbrain/internal/records"
	"github.com/crestline/opsbrain/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Rank indexed knowledge against a query",
	Long: `Query merges the intelligence index with the knowledge documents and
resolved issues from the records store, scores every candidate against
the query text, and prints the top results.

Scoring is lexical: exact and per-token substring matches, weighted tag
hits, a department match bonus, a one-week recency bonus, and the
producer-assigned boost. With --department, items belonging to a
different department are excluded outright; company-wide items always
qualify.

Use --context to print the results as the prompt block a consumer would
inject into an LLM system prompt.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	text := strings.Join(args, " ")

	department, _ := cmd.Flags().GetString("department")
	limit, _ := cmd.Flags().GetInt("limit")
	minScore, _ := cmd.Flags().GetInt("min-score")
	sourceTypes, _ := cmd.Flags().GetStringArray("source-type")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	contextOutput, _ := cmd.Flags().GetBool("context")

	store, err := intelligence.LoadStore(cfg.Intelligence.DataDir, cfg.Intelligence.Capacity)
	if err != nil {
		return err
	}

	// The records store is optional: with no database yet, the index
	// alone feeds the candidate pool.
	var knowledge intelligence.KnowledgeSource
	var issues intelligence.IssueSource
	if rs, err := records.NewStore(cfg.Records); err == nil {
		defer rs.Close()
		knowledge, issues = rs, rs
	} else {
		fmt.Fprintf(os.Stderr, "warning: records store unavailable: %v\n", err)
	}

	engine := intelligence.NewEngine(store, knowledge, issues, cfg.Intelligence)

	opts := types.QueryOptions{
		Department: department,
		Limit:      limit,
		MinScore:   minScore,
	}
	for _, st := range sourceTypes {
		opts.SourceTypes = append(opts.SourceTypes, types.SourceType(st))
	}

	out := engine.Query(context.Background(), text, opts)
	for _, msg := range out.SourceErrors {
		fmt.Fprintf(os.Stderr, "warning: source failed: %s\n", msg)
	}

	switch {
	case jsonOutput:
		return intelligence.FormatJSON(out.Results, os.Stdout)
	case contextOutput:
		block := intelligence.BuildContext(out.Results)
		if block == "" {
			fmt.Println("No relevant context found.")
			return nil
		}
		fmt.Print(block)
		return nil
	default:
		intelligence.FormatTable(out.Results, os.Stdout)
		return nil
	}
}

func init() {
	queryCmd.Flags().String("department", "", "restrict to one department plus company-wide items")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Int("min-score", 0, "minimum relevance score (0 = use default)")
	queryCmd.Flags().StringArray("source-type", nil, "restrict to a source type (repeatable)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().Bool("context", false, "output results as an LLM prompt context block")

	rootCmd.AddCommand(queryCmd)
}
