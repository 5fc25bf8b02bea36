// Copyright Crestline Operations Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crestline/opsbrain/internal/records"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the records store (documents and issues)",
	Long: `Records manages the SQLite store of knowledge documents and issues
that feeds the query candidate pool. Use subcommands to ingest YAML seed
files, list or export the store, or clear issues.`,
}

// --- ingest subcommand ---

var recordsIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest YAML record files into the records store",
	Long: `Ingest reads YAML files from the data directory's records/ folder and
upserts their documents and issues. Files unchanged since the previous
run are skipped.`,
	RunE: runRecordsIngest,
}

func runRecordsIngest(cmd *cobra.Command, args []string) error {
	store, err := openRecords(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record file(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var recordsRetrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "List stored documents and issues",
	Long: `Retrieve lists the records store contents. By default both documents
and issues are shown; use --docs or --issues to narrow, and --resolved to
restrict issues to resolved ones.`,
	RunE: runRecordsRetrieve,
}

func runRecordsRetrieve(cmd *cobra.Command, args []string) error {
	docsOnly, _ := cmd.Flags().GetBool("docs")
	issuesOnly, _ := cmd.Flags().GetBool("issues")
	resolvedOnly, _ := cmd.Flags().GetBool("resolved")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openRecords(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := records.Export{}

	if !issuesOnly {
		if out.Documents, err = store.Documents(ctx); err != nil {
			return err
		}
	}
	if !docsOnly {
		if resolvedOnly {
			out.Issues, err = store.ResolvedIssues(ctx)
		} else {
			out.Issues, err = store.Issues(ctx)
		}
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, d := range out.Documents {
		fmt.Fprintf(os.Stdout, "doc    %-36s  %-15s  %s\n", d.ID, d.Department, d.Title)
	}
	for _, i := range out.Issues {
		fmt.Fprintf(os.Stdout, "issue  %-36s  %-15s  [%s] %s\n", i.ID, i.Department, i.Status, i.Title)
	}
	if len(out.Documents) == 0 && len(out.Issues) == 0 {
		fmt.Println("No records found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n%d document(s), %d issue(s)\n", len(out.Documents), len(out.Issues))
	return nil
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the records store to YAML or JSON",
	RunE:  runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openRecords(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to records.yaml")
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to records.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- clear-issues subcommand ---

var recordsClearIssuesCmd = &cobra.Command{
	Use:   "clear-issues",
	Short: "Delete every issue from the records store",
	Long: `Clear-issues removes all issues from the records store. Intelligence
index entries that reference cleared issues are retained on purpose: the
index keeps historical knowledge even after its source records are gone.`,
	RunE: runRecordsClearIssues,
}

func runRecordsClearIssues(cmd *cobra.Command, args []string) error {
	store, err := openRecords(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ClearIssues(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Cleared %d issue(s). Intelligence entries referencing them are retained.\n", n)
	return nil
}

// --- shared helpers ---

func openRecords(cmd *cobra.Command) (*records.Store, error) {
	cfg := loadConfig(cmd)
	return records.NewStore(cfg.Records)
}

func init() {
	recordsRetrieveCmd.Flags().Bool("docs", false, "list documents only")
	recordsRetrieveCmd.Flags().Bool("issues", false, "list issues only")
	recordsRetrieveCmd.Flags().Bool("resolved", false, "restrict issues to resolved ones")
	recordsRetrieveCmd.Flags().Bool("json", false, "output as JSON")

	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	recordsCmd.AddCommand(recordsIngestCmd)
	recordsCmd.AddCommand(recordsRetrieveCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsClearIssuesCmd)

	rootCmd.AddCommand(recordsCmd)
}
