// Copyright Crestline Operations Inc., 2026. All rights reserved.

package types

import "time"

// KnowledgeDoc is a document in the company knowledge base. Documents are
// one of the two auxiliary collections merged into the intelligence
// candidate pool at query time.
type KnowledgeDoc struct {
	// ID is a stable identifier for the document.
	ID string `json:"id" yaml:"id"`

	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// Content is the document body or logged insight text.
	Content string `json:"content" yaml:"content"`

	// Department scopes the document. Empty means company-wide.
	Department string `json:"department,omitempty" yaml:"department,omitempty"`

	// Tags are curated keywords. When empty, tags are auto-extracted from
	// title and content at aggregation time.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// UploadedAt is when the document entered the knowledge base.
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// IssueStatus tracks an issue through its lifecycle.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
)

// Issue is a tracked operational problem. Resolved issues are the second
// auxiliary collection merged into the intelligence candidate pool.
type Issue struct {
	// ID is a stable identifier for the issue.
	ID string `json:"id" yaml:"id"`

	// Title is a short summary of the problem.
	Title string `json:"title" yaml:"title"`

	// Description is the free-text problem report.
	Description string `json:"description" yaml:"description"`

	// Department scopes the issue. Empty means company-wide.
	Department string `json:"department,omitempty" yaml:"department,omitempty"`

	// Status is the current lifecycle state.
	Status IssueStatus `json:"status" yaml:"status"`

	// Priority orders issues for triage (e.g. "low", "medium", "high").
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`

	// Resolution describes how a resolved issue was fixed.
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`

	// CreatedAt is when the issue was filed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// ResolvedAt is when the issue reached IssueResolved. Zero until then.
	ResolvedAt time.Time `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
}
