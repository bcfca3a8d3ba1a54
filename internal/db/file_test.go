package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutGet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	data, err := store.Get(ctx, VehiclesKey)
	assert.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Put(ctx, VehiclesKey, []byte(`[{"id":"v-1"}]`)))
	require.NoError(t, store.Put(ctx, VehiclesKey, []byte(`[{"id":"v-2"}]`)))

	data, err = store.Get(ctx, VehiclesKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"v-2"}]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "vehicles.json", entries[0].Name())
}

func TestFileStore_PutFailureKeepsPreviousContents(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, RentalsKey, []byte(`[]`)))

	// a missing directory makes CreateTemp fail
	store.dir = filepath.Join(dir, "missing")
	assert.Error(t, store.Put(ctx, RentalsKey, []byte(`[{"id":"r-1"}]`)))

	store.dir = dir
	data, err := store.Get(ctx, RentalsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
