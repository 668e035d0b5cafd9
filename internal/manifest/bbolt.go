package manifest

import (
	"fmt"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BboltStore implements Store using bbolt
type BboltStore struct {
	db *bolt.DB
}

// NewBboltStore opens (or creates) a manifest database at dbPath
func NewBboltStore(dbPath string) (*BboltStore, error) {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{runsBucket, artifactsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	log.Printf("[MANIFEST] Opened %s", dbPath)
	return &BboltStore{db: db}, nil
}

func (b *BboltStore) put(bucket []byte, key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (b *BboltStore) get(bucket []byte, key string, v any) error {
	return b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		// data is only valid inside the transaction; decode copies it
		return decode(data, v)
	})
}

// PutRun stores or replaces a run record
func (b *BboltStore) PutRun(run Run) error {
	return b.put(runsBucket, run.ID, run)
}

// GetRun loads a run record
func (b *BboltStore) GetRun(id string) (Run, error) {
	var run Run
	err := b.get(runsBucket, id, &run)
	return run, err
}

// Runs returns all run records
func (b *BboltStore) Runs() ([]Run, error) {
	var runs []Run
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			var run Run
			if err := decode(v, &run); err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	})
	return runs, err
}

// PutEntry stores or replaces an artifact entry
func (b *BboltStore) PutEntry(e Entry) error {
	return b.put(artifactsBucket, e.Key(), e)
}

// GetEntry loads an artifact entry by key
func (b *BboltStore) GetEntry(key string) (Entry, error) {
	var e Entry
	err := b.get(artifactsBucket, key, &e)
	return e, err
}

// ForEach iterates over all entries in key order
func (b *BboltStore) ForEach(fn func(e Entry) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(artifactsBucket).ForEach(func(_, v []byte) error {
			var e Entry
			if err := decode(v, &e); err != nil {
				return err
			}
			return fn(e)
		})
	})
}

// Close closes the database
func (b *BboltStore) Close() error {
	return b.db.Close()
}
