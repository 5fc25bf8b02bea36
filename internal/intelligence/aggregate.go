// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"github.com/crestline/opsbrain/pkg/types"
)

// resolvedTag marks every resolved-issue candidate so tag hits can find
// past fixes.
const resolvedTag = "resolved"

// candidates merges the three logical sources into one pool, each
// projected into the common IndexedItem-shaped scoring view, then applies
// the department hard filter and the sourceTypes allow-list.
//
// Department filtering is a hard filter, not a soft bonus: when a
// non-wildcard department is requested, candidates whose department is
// set and differs are removed before scoring ever sees them.
func candidates(items []types.IndexedItem, docs []types.KnowledgeDoc, issues []types.Issue, opts types.QueryOptions) []types.IndexedItem {
	pool := make([]types.IndexedItem, 0, len(items)+len(docs)+len(issues))
	pool = append(pool, items...)
	for _, d := range docs {
		pool = append(pool, projectDoc(d))
	}
	for _, is := range issues {
		pool = append(pool, projectIssue(is))
	}

	allowed := allowSet(opts.SourceTypes)
	filterDept := opts.Department != "" && opts.Department != types.DepartmentWide

	out := pool[:0]
	for _, c := range pool {
		if filterDept && c.Department != "" && c.Department != types.DepartmentWide && c.Department != opts.Department {
			continue
		}
		if allowed != nil && !allowed[c.SourceType] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// projectDoc maps a knowledge document into the scoring view. Documents
// without curated tags get tags auto-extracted from title and content.
func projectDoc(doc types.KnowledgeDoc) types.IndexedItem {
	tags := normalizeTags(doc.Tags)
	if len(tags) == 0 {
		tags = ExtractTags(doc.Title + " " + doc.Content)
	}
	return types.IndexedItem{
		ID:         "knowledge-" + doc.ID,
		SourceType: types.SourceKnowledge,
		SourceID:   doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		Department: doc.Department,
		Tags:       tags,
		CreatedAt:  doc.UploadedAt,
	}
}

// projectIssue maps a resolved issue into the scoring view. The issue
// description becomes the content, and a literal "resolved" tag is added
// on top of any extracted tags.
func projectIssue(issue types.Issue) types.IndexedItem {
	tags := ExtractTags(issue.Title + " " + issue.Description)
	if !containsTag(tags, resolvedTag) {
		tags = append(tags, resolvedTag)
	}
	content := issue.Description
	if issue.Resolution != "" {
		content += "\nResolution: " + issue.Resolution
	}
	return types.IndexedItem{
		ID:         "issue-" + issue.ID,
		SourceType: types.SourceResolvedIssue,
		SourceID:   issue.ID,
		Title:      issue.Title,
		Content:    content,
		Department: issue.Department,
		Tags:       tags,
		CreatedAt:  issue.ResolvedAt,
	}
}

func allowSet(sourceTypes []types.SourceType) map[types.SourceType]bool {
	if len(sourceTypes) == 0 {
		return nil
	}
	set := make(map[types.SourceType]bool, len(sourceTypes))
	for _, st := range sourceTypes {
		set[st] = true
	}
	return set
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
