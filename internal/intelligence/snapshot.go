// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/crestline/opsbrain/pkg/types"
)

const (
	indexDir     = "index"
	snapshotFile = "intelligence.json"
)

// snapshot is the durable form of the store: the full ordered item list
// plus the configured capacity, so a restart preserves the chosen limit.
type snapshot struct {
	Capacity int                 `json:"capacity"`
	Items    []types.IndexedItem `json:"items"`
}

// snapshotPath returns dataDir/index/intelligence.json.
func snapshotPath(dataDir string) string {
	return filepath.Join(dataDir, indexDir, snapshotFile)
}

// LoadStore restores a store from dataDir/index/intelligence.json. The
// item list is loaded verbatim and capacity is re-enforced in case the
// configured cap shrank since the last save. A missing snapshot yields an
// empty store with the given capacity; capacity > 0 also overrides the
// persisted value. A corrupt snapshot is reported but still degrades to
// an empty store, since the index is an enhancement layer rather than a
// system of record.
func LoadStore(dataDir string, capacity int) (*Store, error) {
	store := NewStore(capacity)

	data, err := os.ReadFile(snapshotPath(dataDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return store, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store, fmt.Errorf("parsing snapshot: %w", err)
	}

	if capacity <= 0 {
		capacity = snap.Capacity
	}
	store.replace(snap.Items, capacity)
	return store, nil
}

// SaveStore writes the store to dataDir/index/intelligence.json, creating
// the index directory if needed.
func SaveStore(dataDir string, store *Store) error {
	dir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	snap := snapshot{
		Capacity: store.Capacity(),
		Items:    store.All(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(snapshotPath(dataDir), data, 0o644)
}
