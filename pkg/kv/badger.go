package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the embedded backend used for single-node setups and tests.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a store at path. An empty path keeps everything in memory.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string, out any) (bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, decode(data, out)
}

func (s *BadgerStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.db.Update(func(txn *badger.Txn) error {
			tx := newBufferedTx(keys, func(key string) ([]byte, bool, error) {
				item, err := txn.Get([]byte(key))
				if errors.Is(err, badger.ErrKeyNotFound) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				data, err := item.ValueCopy(nil)
				return data, err == nil, err
			})
			if err := fn(tx); err != nil {
				return err
			}
			for _, w := range tx.writes() {
				var err error
				if w.value == nil {
					err = txn.Delete([]byte(w.key))
				} else {
					err = txn.Set([]byte(w.key), w.value)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, badger.ErrConflict) {
			backoff(ctx, attempt)
			continue
		}
		return err
	}
	return ErrConflict
}

func (s *BadgerStore) Put(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	entry := badger.NewEntry([]byte(key), data)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
