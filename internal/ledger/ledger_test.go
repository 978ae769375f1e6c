package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, Run{
		Kind:               "check",
		StartedAt:          time.Now().Add(-time.Minute),
		Duration:           120 * time.Millisecond,
		Warnings:           53,
		MissingScreenshots: 48,
		PagesNotInNav:      5,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = store.Record(ctx, Run{
		Kind:      "capture",
		StartedAt: time.Now(),
		Duration:  9 * time.Second,
		Captured:  12,
		Failed:    2,
		Warnings:  2,
	})
	require.NoError(t, err)

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "capture", runs[0].Kind, "newest first")
	assert.Equal(t, 12, runs[0].Captured)
	assert.Equal(t, "check", runs[1].Kind)
	assert.Equal(t, 48, runs[1].MissingScreenshots)
	assert.Equal(t, 5, runs[1].PagesNotInNav)
	assert.Equal(t, 120*time.Millisecond, runs[1].Duration)
}

func TestRecent_Limit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, Run{Kind: "build", StartedAt: time.Now()})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "ledger.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
