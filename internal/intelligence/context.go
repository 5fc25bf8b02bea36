// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/crestline/opsbrain/pkg/types"
)

// maxContextContent caps how much of an item's content is injected into
// an LLM prompt, per item.
const maxContextContent = 500

// BuildContext formats ranked results into the numbered "relevant company
// knowledge" block consumers inject into an LLM system prompt. Content is
// truncated to 500 characters per item. An empty result set yields an
// empty string so callers can skip the block entirely.
func BuildContext(results []types.RankedItem) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Relevant company knowledge:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Title)
		if r.Department != "" && r.Department != types.DepartmentWide {
			fmt.Fprintf(&b, " [%s]", r.Department)
		}
		b.WriteString("\n")

		content := strings.TrimSpace(r.Content)
		if content != "" {
			if len(content) > maxContextContent {
				content = content[:maxContextContent] + "..."
			}
			b.WriteString("   " + content + "\n")
		}
	}
	return b.String()
}

// FormatTable writes ranked results as a human-readable table to w.
func FormatTable(results []types.RankedItem, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No relevant items found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-20s  %-40s  %-14s  %s\n",
		"Rank", "Score", "Source", "Title", "Department", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		dept := r.Department
		if dept == "" {
			dept = types.DepartmentWide
		}
		if len(dept) > 14 {
			dept = dept[:11] + "..."
		}
		tags := strings.Join(r.Tags, ",")
		if len(tags) > 25 {
			tags = tags[:22] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-5d  %-20s  %-40s  %-14s  %s\n",
			i+1, r.RelevanceScore, r.SourceType, title, dept, tags)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes ranked results as indented JSON to w.
func FormatJSON(results []types.RankedItem, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
