// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crestline/opsbrain/pkg/types"
)

// Store is the bounded, append-ordered collection of indexed items,
// most-recent-first. Items are immutable after insertion and leave the
// store only through oldest-first capacity eviction. Entries that
// reference records deleted elsewhere (a cleared issue, a removed
// document) are kept on purpose: the index preserves historical knowledge
// rather than cascading deletions.
//
// Add and SetCapacity serialize under a single mutex because eviction and
// insertion are not independently idempotent; All copies under a read
// lock so queries never observe a half-evicted state.
type Store struct {
	mu       sync.RWMutex
	items    []types.IndexedItem // most-recent-first
	capacity int
}

// NewStore creates an empty store. Capacity is clamped to
// [types.MinCapacity, types.MaxCapacity]; zero selects the default.
func NewStore(capacity int) *Store {
	return &Store{capacity: types.ClampCapacity(capacity)}
}

// Add inserts an entry: it assigns an ID when the producer supplied none,
// stamps CreatedAt, unions producer tags with tags auto-extracted from
// title and content, prepends the item, and evicts the oldest items until
// the store fits its capacity again.
//
// Add never fails. Indexing is best-effort telemetry, not a critical
// path: a missing title or content is stored as an empty string rather
// than rejected, so producers never see their primary action blocked.
func (s *Store) Add(entry types.Entry) types.IndexedItem {
	item := types.IndexedItem{
		ID:             entry.ID,
		SourceType:     entry.SourceType,
		SourceID:       entry.SourceID,
		Title:          strings.TrimSpace(entry.Title),
		Content:        entry.Content,
		Department:     entry.Department,
		Metadata:       entry.Metadata,
		CreatedAt:      time.Now(),
		RelevanceBoost: entry.RelevanceBoost,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Tags = unionTags(
		normalizeTags(entry.Tags),
		ExtractTags(item.Title+" "+item.Content),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]types.IndexedItem{item}, s.items...)
	s.evictLocked()
	return item
}

// All returns a most-recent-first snapshot copy of the store.
func (s *Store) All() []types.IndexedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.IndexedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current item count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Capacity returns the configured capacity.
func (s *Store) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// SetCapacity changes the capacity at runtime. Out-of-range values are
// clamped silently, never rejected. Shrinking evicts immediately.
func (s *Store) SetCapacity(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = types.ClampCapacity(n)
	s.evictLocked()
	return s.capacity
}

// KeepOrphans reports whether index entries outlive their source records.
// Always true: clearing issues or documents elsewhere does not cascade
// into the index.
func (s *Store) KeepOrphans() bool { return true }

// evictLocked drops items from the tail (oldest) until the store fits its
// capacity. Strictly FIFO: RelevanceBoost and the recency bonus already
// encode importance, so eviction carries no second signal.
func (s *Store) evictLocked() {
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
}

// replace swaps in a restored item list. Used by snapshot loading.
func (s *Store) replace(items []types.IndexedItem, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = types.ClampCapacity(capacity)
	s.items = items
	s.evictLocked()
}
