package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

// Collection reads and writes one typed collection as a whole. Reads never
// fail: a broken collection loads as empty and a warning is surfaced.
type Collection[T any] struct {
	store    Store
	key      string
	notifier notify.Notifier
	log      logrus.FieldLogger
}

// NewCollection binds key in store to the record type T.
func NewCollection[T any](store Store, key string, notifier notify.Notifier, log logrus.FieldLogger) *Collection[T] {
	return &Collection[T]{
		store:    store,
		key:      key,
		notifier: notifier,
		log:      log.WithField("collection", key),
	}
}

// Key returns the logical collection name.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns every stored record in insertion order.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.loadFailed(err)
		return []T{}
	}
	if len(data) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.loadFailed(err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save overwrites the whole collection with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return c.saveFailed(err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return c.saveFailed(err)
	}
	return nil
}

func (c *Collection[T]) loadFailed(err error) {
	c.log.WithError(err).Error("Error getting items from storage")
	c.notifier.Warning("Error", fmt.Sprintf("Failed to load data from storage. (%s)", c.key))
}

func (c *Collection[T]) saveFailed(err error) error {
	c.log.WithError(err).Error("Error saving items to storage")
	c.notifier.Warning("Error", fmt.Sprintf("Failed to save data to storage. (%s)", c.key))
	return &StorageError{Key: c.key, Op: "save", Err: err}
}
