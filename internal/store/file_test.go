package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpudeals/gpu-deals/internal/store"
)

func TestFileStore_GetSet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	fs := store.NewFileStore(path)
	ctx := context.Background()

	_, err := fs.Get(ctx, store.KeyCadence)
	require.ErrorIs(t, err, store.ErrNotFound, "missing file reads as empty store")

	require.NoError(t, fs.Set(ctx, store.KeyCadence, "15"))
	require.NoError(t, fs.Set(ctx, store.KeyAPIURL, "https://api.gpudeals.net/"))

	got, err := fs.Get(ctx, store.KeyCadence)
	require.NoError(t, err)
	assert.Equal(t, "15", got)

	got, err = fs.Get(ctx, store.KeyAPIURL)
	require.NoError(t, err)
	assert.Equal(t, "https://api.gpudeals.net/", got)
}

func TestFileStore_OverwriteReplacesValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	fs := store.NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, fs.Set(ctx, store.KeyCadence, "15"))
	require.NoError(t, fs.Set(ctx, store.KeyCadence, "5"))

	got, err := fs.Get(ctx, store.KeyCadence)
	require.NoError(t, err)
	assert.Equal(t, "5", got)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	ctx := context.Background()

	require.NoError(t, store.NewFileStore(path).Set(ctx, store.KeyAlerts, `[]`))

	got, err := store.NewFileStore(path).Get(ctx, store.KeyAlerts)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := store.NewFileStore(filepath.Join(dir, "settings.json"))
	require.NoError(t, fs.Set(context.Background(), store.KeyCadence, "30"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())
}

func TestFileStore_Ping(t *testing.T) {
	t.Parallel()

	fs := store.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	assert.NoError(t, fs.Ping(context.Background()))

	missing := store.NewFileStore("/nonexistent-dir/settings.json")
	assert.Error(t, missing.Ping(context.Background()))
}
