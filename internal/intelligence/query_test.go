// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crestline/opsbrain/pkg/types"
)

// --- test fakes ---

type fakeKnowledge struct {
	docs []types.KnowledgeDoc
	err  error
}

func (f fakeKnowledge) Documents(ctx context.Context) ([]types.KnowledgeDoc, error) {
	return f.docs, f.err
}

type fakeIssues struct {
	issues []types.Issue
	err    error
}

func (f fakeIssues) ResolvedIssues(ctx context.Context) ([]types.Issue, error) {
	return f.issues, f.err
}

// testEngine builds an engine over a fresh store with default options.
func testEngine(t *testing.T, knowledge KnowledgeSource, issues IssueSource) *Engine {
	t.Helper()
	return NewEngine(NewStore(0), knowledge, issues, types.IntelligenceConfig{})
}

// --- query pipeline tests ---

func TestQueryEmptyStore(t *testing.T) {
	e := testEngine(t, nil, nil)
	out := e.Query(context.Background(), "permit", types.QueryOptions{})
	if len(out.Results) != 0 {
		t.Errorf("got %d results from an empty store, want 0", len(out.Results))
	}
	if len(out.SourceErrors) != 0 {
		t.Errorf("unexpected source errors: %v", out.SourceErrors)
	}
}

func TestQueryRanksAndTruncates(t *testing.T) {
	e := testEngine(t, nil, nil)
	for i := 0; i < 8; i++ {
		e.Add(types.Entry{
			Title:          "permit question",
			RelevanceBoost: i, // later inserts score higher
		})
	}

	out := e.Query(context.Background(), "permit", types.QueryOptions{})
	if len(out.Results) != defaultLimit {
		t.Fatalf("got %d results, want default limit %d", len(out.Results), defaultLimit)
	}
	for i := 1; i < len(out.Results); i++ {
		if out.Results[i].RelevanceScore > out.Results[i-1].RelevanceScore {
			t.Errorf("results not sorted by score descending at %d", i)
		}
	}
	if out.Results[0].RelevanceBoost != 7 {
		t.Errorf("top result boost = %d, want 7", out.Results[0].RelevanceBoost)
	}
}

func TestQueryBoostBreaksTie(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "plain", Title: "permit question"})
	e.Add(types.Entry{ID: "boosted", Title: "permit question", RelevanceBoost: 5})

	out := e.Query(context.Background(), "permit", types.QueryOptions{})
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	if out.Results[0].ID != "boosted" {
		t.Errorf("top result = %q, want the boosted item", out.Results[0].ID)
	}
	if out.Results[0].RelevanceScore <= out.Results[1].RelevanceScore {
		t.Error("boosted item does not rank strictly higher")
	}
}

func TestQueryTieKeepsInsertionOrder(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "older", Title: "permit question"})
	e.Add(types.Entry{ID: "newer", Title: "permit question"})

	out := e.Query(context.Background(), "permit", types.QueryOptions{})
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	// Equal scores: the stable sort keeps most-recent-first store order.
	if out.Results[0].ID != "newer" {
		t.Errorf("tie broke to %q, want the newer item first", out.Results[0].ID)
	}
}

func TestQueryDepartmentHardFilter(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "a", Title: "permit", Department: "production"})
	e.Add(types.Entry{ID: "b", Title: "permit", Department: "office"})
	e.Add(types.Entry{ID: "c", Title: "permit"})

	out := e.Query(context.Background(), "permit", types.QueryOptions{Department: "production"})

	ids := resultIDs(out.Results)
	if !ids["a"] || !ids["c"] {
		t.Errorf("results %v, want the production and company-wide items", ids)
	}
	if ids["b"] {
		t.Error("item from another department leaked through the hard filter")
	}
}

func TestQueryDepartmentWildcardScenario(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "sales-item", Title: "quota update", Department: "sales"})
	e.Add(types.Entry{ID: "wide-item", Title: "quota policy"})
	e.Add(types.Entry{ID: "hr-item", Title: "quota review", Department: "hr"})

	out := e.Query(context.Background(), "quota", types.QueryOptions{Department: "sales"})

	ids := resultIDs(out.Results)
	if !ids["sales-item"] || !ids["wide-item"] {
		t.Errorf("results %v, want sales and wildcard items", ids)
	}
	if ids["hr-item"] {
		t.Error("hr item returned for a sales query")
	}
}

func TestQuerySourceTypeAllowList(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "chat", SourceType: types.SourceChatQuery, Title: "permit"})
	e.Add(types.Entry{ID: "sop", SourceType: types.SourceSOPCreated, Title: "permit"})

	out := e.Query(context.Background(), "permit", types.QueryOptions{
		SourceTypes: []types.SourceType{types.SourceSOPCreated},
	})

	if len(out.Results) != 1 || out.Results[0].ID != "sop" {
		t.Errorf("results = %v, want only the SOP item", resultIDs(out.Results))
	}
}

func TestQueryMinScoreThreshold(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{Title: "permit", RelevanceBoost: 5})
	e.Add(types.Entry{Title: "unrelated lorem"})

	out := e.Query(context.Background(), "permit", types.QueryOptions{MinScore: 10})
	if len(out.Results) != 1 {
		t.Fatalf("got %d results above threshold, want 1", len(out.Results))
	}
}

func TestQueryEmptyText(t *testing.T) {
	e := testEngine(t, nil, nil)
	e.Add(types.Entry{ID: "fresh", Title: "anything at all"})

	// Fresh items clear the default minimum score on recency alone.
	out := e.Query(context.Background(), "", types.QueryOptions{})
	if len(out.Results) != 1 || out.Results[0].ID != "fresh" {
		t.Errorf("empty query results = %v, want the fresh item", resultIDs(out.Results))
	}
}

// --- aggregation tests ---

func TestQueryMergesKnowledgeDocs(t *testing.T) {
	docs := fakeKnowledge{docs: []types.KnowledgeDoc{{
		ID:         "doc-1",
		Title:      "Permit application checklist",
		Content:    "steps for filing a city permit",
		UploadedAt: time.Now(),
	}}}

	e := testEngine(t, docs, nil)
	out := e.Query(context.Background(), "permit", types.QueryOptions{})

	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(out.Results))
	}
	r := out.Results[0]
	if r.SourceType != types.SourceKnowledge {
		t.Errorf("SourceType = %q, want %q", r.SourceType, types.SourceKnowledge)
	}
	if r.SourceID != "doc-1" {
		t.Errorf("SourceID = %q, want doc-1", r.SourceID)
	}
	// Tags defaulted by extraction since the document had none.
	if !r.HasTag("permit") {
		t.Errorf("Tags = %v, want auto-extracted permit tag", r.Tags)
	}
}

func TestQueryMergesResolvedIssues(t *testing.T) {
	issues := fakeIssues{issues: []types.Issue{{
		ID:          "issue-9",
		Title:       "Inspection failed on Oak St",
		Description: "framing inspection failed, rework scheduled",
		Status:      types.IssueResolved,
		Resolution:  "passed re-inspection after bracing fix",
		ResolvedAt:  time.Now(),
	}}}

	e := testEngine(t, nil, issues)
	out := e.Query(context.Background(), "inspection", types.QueryOptions{})

	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(out.Results))
	}
	r := out.Results[0]
	if r.SourceType != types.SourceResolvedIssue {
		t.Errorf("SourceType = %q, want %q", r.SourceType, types.SourceResolvedIssue)
	}
	if !r.HasTag(resolvedTag) {
		t.Errorf("Tags = %v, want literal resolved tag", r.Tags)
	}
	if r.Content == "" {
		t.Error("issue description not projected into content")
	}
}

func TestQuerySourceFailureDegrades(t *testing.T) {
	e := testEngine(t,
		fakeKnowledge{err: errors.New("db locked")},
		fakeIssues{issues: []types.Issue{{
			ID: "i1", Title: "permit fix", Status: types.IssueResolved, ResolvedAt: time.Now(),
		}}},
	)
	e.Add(types.Entry{ID: "stored", Title: "permit note"})

	out := e.Query(context.Background(), "permit", types.QueryOptions{})

	if len(out.SourceErrors) != 1 {
		t.Fatalf("SourceErrors = %v, want one entry", out.SourceErrors)
	}
	ids := resultIDs(out.Results)
	if !ids["stored"] || !ids["issue-i1"] {
		t.Errorf("results = %v, want store and issue candidates despite the failing source", ids)
	}
}

func resultIDs(results []types.RankedItem) map[string]bool {
	ids := make(map[string]bool, len(results))
	for _, r := range results {
		ids[r.ID] = true
	}
	return ids
}
