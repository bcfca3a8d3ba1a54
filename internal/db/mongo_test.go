package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMongo_BadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, "mongodb://bad:uri")
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoStore_NilCollection(t *testing.T) {
	store := &MongoStore{Collection: nil}
	_, err := store.Get(context.Background(), VehiclesKey)
	assert.Error(t, err)
	err = store.Put(context.Background(), VehiclesKey, []byte(`[]`))
	assert.Error(t, err)
}

// Integration test (requires running MongoDB)
func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	defer client.Disconnect(context.Background())

	coll := client.Database("test_fleet_backoffice").Collection("collections")
	_ = coll.Drop(ctx)
	store := &MongoStore{Collection: coll}

	data, err := store.Get(ctx, ExpendituresKey)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Put(ctx, ExpendituresKey, []byte(`[{"id":"e-1"}]`)))
	require.NoError(t, store.Put(ctx, ExpendituresKey, []byte(`[{"id":"e-2"}]`)))

	data, err = store.Get(ctx, ExpendituresKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"e-2"}]`, string(data))
}
