// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline/opsbrain/pkg/types"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	store := NewStore(200)
	store.Add(types.Entry{
		ID:         "e1",
		SourceType: types.SourceResolvedIssue,
		Title:      "Permit delay resolved",
		Department: "production",
		Metadata:   map[string]string{"issue": "42"},
	})
	store.Add(types.Entry{ID: "e2", Title: "Voice session summary"})

	require.NoError(t, SaveStore(dataDir, store))

	restored, err := LoadStore(dataDir, 0)
	require.NoError(t, err)

	assert.Equal(t, 200, restored.Capacity())
	require.Equal(t, 2, restored.Len())

	all := restored.All()
	assert.Equal(t, "e2", all[0].ID)
	assert.Equal(t, "e1", all[1].ID)
	assert.Equal(t, "42", all[1].Metadata["issue"])
	assert.Equal(t, store.All()[1].CreatedAt.Unix(), all[1].CreatedAt.Unix())
}

func TestLoadStoreReenforcesShrunkCapacity(t *testing.T) {
	dataDir := t.TempDir()

	store := NewStore(types.MaxCapacity)
	for i := 0; i < 150; i++ {
		store.Add(types.Entry{Title: "t"})
	}
	require.NoError(t, SaveStore(dataDir, store))

	// Restart with a smaller configured cap: the surplus tail is evicted
	// on load.
	restored, err := LoadStore(dataDir, types.MinCapacity)
	require.NoError(t, err)
	assert.Equal(t, types.MinCapacity, restored.Len())
	assert.Equal(t, types.MinCapacity, restored.Capacity())
}

func TestLoadStoreMissingSnapshot(t *testing.T) {
	restored, err := LoadStore(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
	assert.Equal(t, types.DefaultCapacity, restored.Capacity())
}

func TestLoadStoreCorruptSnapshot(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, indexDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{not json"), 0o644))

	// Corruption is reported but still yields a usable empty store.
	restored, err := LoadStore(dataDir, 0)
	assert.Error(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 0, restored.Len())
}
