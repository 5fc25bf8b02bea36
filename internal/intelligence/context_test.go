// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline/opsbrain/pkg/types"
)

func rankedFixture() []types.RankedItem {
	return []types.RankedItem{
		{
			IndexedItem: types.IndexedItem{
				Title:      "Permit delay – Johnson",
				Content:    "waiting on city approval",
				Department: "production",
				Tags:       []string{"permit", "delayed"},
				SourceType: types.SourceResolvedIssue,
			},
			RelevanceScore: 27,
		},
		{
			IndexedItem: types.IndexedItem{
				Title:      "Inspection checklist",
				SourceType: types.SourceKnowledge,
			},
			RelevanceScore: 12,
		},
	}
}

func TestBuildContext(t *testing.T) {
	block := BuildContext(rankedFixture())

	assert.True(t, strings.HasPrefix(block, "Relevant company knowledge:\n"))
	assert.Contains(t, block, "1. Permit delay – Johnson [production]")
	assert.Contains(t, block, "waiting on city approval")
	assert.Contains(t, block, "2. Inspection checklist")
}

func TestBuildContextTruncatesContent(t *testing.T) {
	results := rankedFixture()
	results[0].Content = strings.Repeat("x", 2000)

	block := BuildContext(results)

	line := ""
	for _, l := range strings.Split(block, "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), "x") {
			line = strings.TrimSpace(l)
		}
	}
	require.NotEmpty(t, line)
	assert.Len(t, line, maxContextContent+3) // 500 chars plus "..."
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(rankedFixture(), &buf)

	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "resolved_issue")
	assert.Contains(t, out, "2 results")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No relevant items found.")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(rankedFixture(), &buf))

	var decoded []types.RankedItem
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 27, decoded[0].RelevanceScore)
}
