package cache

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"silkmoth/internal/domain"
)

var bucketDiscover = []byte("discover_results")

// PersistentCache stores discover() results on disk via bbolt, keyed by a
// content hash of the input collection and configuration, so the CLI's
// discover command can skip re-running an all-pairs sweep across repeated
// invocations against the same data. This is a result cache, not index
// persistence: the engine always rebuilds its inverted index from the
// source sets at construction.
type PersistentCache struct {
	db *bbolt.DB
}

// NewPersistentCache opens (creating if absent) a bbolt database at path.
func NewPersistentCache(path string) (*PersistentCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open discover cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDiscover)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init discover cache: %w", err)
	}
	return &PersistentCache{db: db}, nil
}

// Get retrieves a previously stored discover result for key, if present.
func (c *PersistentCache) Get(key string) ([]domain.DiscoverHit, bool, error) {
	var hits []domain.DiscoverHit
	var found bool
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDiscover).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &hits)
	})
	return hits, found, err
}

// Put stores a discover result under key.
func (c *PersistentCache) Put(key string, hits []domain.DiscoverHit) error {
	data, err := json.Marshal(hits)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDiscover).Put([]byte(key), data)
	})
}

func (c *PersistentCache) Close() error {
	return c.db.Close()
}
