// Copyright Crestline Operations Inc., 2026. All rights reserved.

// Package types defines shared data structures for opsbrain: the
// intelligence index item model, query contracts, auxiliary record
// types, and configuration structs.
package types

import "time"

// SourceType tags the subsystem that produced an intelligence entry.
type SourceType string

const (
	SourceChatQuery        SourceType = "chat_query"
	SourceIssueCreated     SourceType = "issue_created"
	SourceIssueStatus      SourceType = "issue_status_change"
	SourceResolvedIssue    SourceType = "resolved_issue"
	SourceDocumentUpload   SourceType = "document_upload"
	SourceKnowledge        SourceType = "knowledge"
	SourceTeamChange       SourceType = "team_change"
	SourceDepartmentChange SourceType = "department_change"
	SourceSOPCreated       SourceType = "sop_created"
	SourceVoiceSession     SourceType = "voice_session"
	SourceVoiceInteraction SourceType = "voice_interaction"
)

// DepartmentWide is the wildcard department. An item carrying it (or an
// empty department) applies everywhere and matches any department filter.
const DepartmentWide = "company-wide"

// Entry is the producer-facing input to the intelligence store. The store
// fills in whatever the producer leaves blank: ID, timestamp, and
// auto-extracted tags.
type Entry struct {
	// ID is an optional producer-supplied identifier. Generated when empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// SourceType identifies the producing subsystem.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// SourceID identifies the originating record (issue ID, message ID).
	// Not required to be unique across source types.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Title is a short human-readable label.
	Title string `json:"title" yaml:"title"`

	// Content is the free-text body. May be empty.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Department scopes the entry. Empty or DepartmentWide means it
	// applies everywhere.
	Department string `json:"department,omitempty" yaml:"department,omitempty"`

	// Tags are producer-supplied keywords, unioned with auto-extracted
	// tags on insertion.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Metadata is an opaque producer-defined map, never interpreted by
	// the index.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// RelevanceBoost is a static producer-supplied weight, typically 0-5.
	// Higher means more likely to matter regardless of query.
	RelevanceBoost int `json:"relevance_boost,omitempty" yaml:"relevance_boost,omitempty"`
}

// IndexedItem is one unit of captured knowledge in the intelligence index.
// Items are immutable after insertion: a changed fact is represented by a
// new item referencing the same SourceID.
type IndexedItem struct {
	ID             string            `json:"id" yaml:"id"`
	SourceType     SourceType        `json:"source_type" yaml:"source_type"`
	SourceID       string            `json:"source_id" yaml:"source_id"`
	Title          string            `json:"title" yaml:"title"`
	Content        string            `json:"content,omitempty" yaml:"content,omitempty"`
	Department     string            `json:"department,omitempty" yaml:"department,omitempty"`
	Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
	RelevanceBoost int               `json:"relevance_boost,omitempty" yaml:"relevance_boost,omitempty"`
}

// HasTag reports whether tag is present verbatim in the item's tag set.
func (it IndexedItem) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RankedItem is a query result: an IndexedItem with its computed score.
type RankedItem struct {
	IndexedItem
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`
}

// QueryOptions holds the tunable parameters of an intelligence query.
// Zero values fall back to the engine defaults.
type QueryOptions struct {
	// Department restricts results to one department plus company-wide
	// items. Empty or DepartmentWide disables the filter.
	Department string

	// Limit is the maximum number of results (default 5).
	Limit int

	// SourceTypes is an optional allow-list. Empty admits every source.
	SourceTypes []SourceType

	// MinScore excludes candidates scoring below it (default 1).
	MinScore int
}
