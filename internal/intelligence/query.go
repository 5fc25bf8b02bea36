// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/crestline/opsbrain/pkg/types"
)

// Default query parameters applied when options leave them zero.
const (
	defaultLimit    = 5
	defaultMinScore = 1
)

// KnowledgeSource supplies knowledge documents to the query engine.
type KnowledgeSource interface {
	Documents(ctx context.Context) ([]types.KnowledgeDoc, error)
}

// IssueSource supplies resolved issues to the query engine.
type IssueSource interface {
	ResolvedIssues(ctx context.Context) ([]types.Issue, error)
}

// QueryOutput holds ranked results plus any source loading failures.
// Source failures never abort a query: the index is an enhancement layer
// over the primary flows, so it degrades to "no relevant context found"
// instead of surfacing errors.
type QueryOutput struct {
	Results      []types.RankedItem
	SourceErrors []string
}

// Engine ties the store, the auxiliary record sources, the scorer, and
// the ranking pipeline together. It is the in-process surface producers
// and consumers couple to: producers call Add whenever a noteworthy event
// occurs; consumers call Query right before composing an LLM prompt.
type Engine struct {
	store     *Store
	knowledge KnowledgeSource
	issues    IssueSource

	maxResults int
	minScore   int

	// now is swappable so tests can pin the recency bonus.
	now func() time.Time
}

// NewEngine creates a query engine over store. knowledge and issues may
// be nil, in which case only the store feeds the candidate pool. Zero
// maxResults or minScore select the defaults (5 and 1).
func NewEngine(store *Store, knowledge KnowledgeSource, issues IssueSource, cfg types.IntelligenceConfig) *Engine {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultLimit
	}
	minScore := cfg.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	return &Engine{
		store:      store,
		knowledge:  knowledge,
		issues:     issues,
		maxResults: maxResults,
		minScore:   minScore,
		now:        time.Now,
	}
}

// Store exposes the underlying intelligence store.
func (e *Engine) Store() *Store { return e.store }

// Add indexes a noteworthy event. It never fails; see Store.Add.
func (e *Engine) Add(entry types.Entry) types.IndexedItem {
	return e.store.Add(entry)
}

// Query returns the ranked items relevant to text. The pipeline is a
// pure read path: aggregate candidates from the store snapshot and the
// auxiliary collections, score each, drop those under the minimum score,
// sort descending by score (stable, so ties keep most-recent-first
// insertion order), and truncate to the limit.
//
// An empty store and a query with no matches both produce an empty
// result list. A failing auxiliary source is recorded in SourceErrors
// and the remaining sources still contribute.
func (e *Engine) Query(ctx context.Context, text string, opts types.QueryOptions) QueryOutput {
	var out QueryOutput
	var docs []types.KnowledgeDoc
	var issues []types.Issue

	if e.knowledge != nil {
		loaded, err := e.knowledge.Documents(ctx)
		if err != nil {
			out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("knowledge: %v", err))
		} else {
			docs = loaded
		}
	}
	if e.issues != nil {
		loaded, err := e.issues.ResolvedIssues(ctx)
		if err != nil {
			out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("issues: %v", err))
		} else {
			issues = loaded
		}
	}

	out.Results = e.rank(text, opts, candidates(e.store.All(), docs, issues, opts))
	return out
}

// rank scores, filters, orders, and truncates an aggregated pool.
func (e *Engine) rank(text string, opts types.QueryOptions, pool []types.IndexedItem) []types.RankedItem {
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = e.minScore
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = e.maxResults
	}

	now := e.now()
	var ranked []types.RankedItem
	for _, c := range pool {
		score := Score(text, c, opts.Department, now)
		if score < minScore {
			continue
		}
		ranked = append(ranked, types.RankedItem{IndexedItem: c, RelevanceScore: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
