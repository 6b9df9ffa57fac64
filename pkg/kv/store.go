// Package kv stores JSON documents under fixed keys. Every mutation is a
// read-modify-write executed atomically by Store.Update.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const maxAttempts = 64

var (
	// ErrConflict is returned when an optimistic transaction kept losing
	// against concurrent writers.
	ErrConflict = errors.New("kv: transaction conflict")
	// ErrUndeclaredKey is returned when a transaction touches a key it did
	// not declare up front.
	ErrUndeclaredKey = errors.New("kv: key not declared in transaction")
)

type Store interface {
	// Get decodes the value stored at key into out and reports whether the
	// key exists.
	Get(ctx context.Context, key string, out any) (bool, error)
	// Update runs fn in a transaction over keys. fn may run more than once
	// when the backend retries after a conflict, so it must not have side
	// effects outside tx.
	Update(ctx context.Context, keys []string, fn func(tx Tx) error) error
	// Put writes value outside a transaction. A positive ttl lets the
	// backend drop the key once it elapses.
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Tx interface {
	Get(key string, out any) (bool, error)
	Put(key string, value any) error
	Delete(key string) error
}

// Load reads key inside tx, returning the zero value when it is missing.
func Load[T any](tx Tx, key string) (T, error) {
	var value T
	if _, err := tx.Get(key, &value); err != nil {
		return value, err
	}
	return value, nil
}

// Read is Load outside a transaction.
func Read[T any](ctx context.Context, s Store, key string) (T, error) {
	var value T
	if _, err := s.Get(ctx, key, &value); err != nil {
		return value, err
	}
	return value, nil
}

func encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("kv: encode: %w", err)
	}
	return data, nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("kv: decode: %w", err)
	}
	return nil
}

type write struct {
	key   string
	value []byte // nil deletes
}

// bufferedTx collects writes until the backend commits them. Reads observe
// the transaction's own pending writes.
type bufferedTx struct {
	declared map[string]struct{}
	read     func(key string) ([]byte, bool, error)
	pending  map[string][]byte
	deleted  map[string]bool
}

func newBufferedTx(keys []string, read func(key string) ([]byte, bool, error)) *bufferedTx {
	declared := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		declared[k] = struct{}{}
	}
	return &bufferedTx{
		declared: declared,
		read:     read,
		pending:  make(map[string][]byte),
		deleted:  make(map[string]bool),
	}
}

func (t *bufferedTx) check(key string) error {
	if _, ok := t.declared[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUndeclaredKey, key)
	}
	return nil
}

func (t *bufferedTx) Get(key string, out any) (bool, error) {
	if err := t.check(key); err != nil {
		return false, err
	}
	if t.deleted[key] {
		return false, nil
	}
	data, ok := t.pending[key]
	if !ok {
		var err error
		data, ok, err = t.read(key)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, decode(data, out)
}

func (t *bufferedTx) Put(key string, value any) error {
	if err := t.check(key); err != nil {
		return err
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	delete(t.deleted, key)
	t.pending[key] = data
	return nil
}

func (t *bufferedTx) Delete(key string) error {
	if err := t.check(key); err != nil {
		return err
	}
	delete(t.pending, key)
	t.deleted[key] = true
	return nil
}

// writes returns the pending changes sorted by key.
func (t *bufferedTx) writes() []write {
	out := make([]write, 0, len(t.pending)+len(t.deleted))
	for k, v := range t.pending {
		out = append(out, write{key: k, value: v})
	}
	for k := range t.deleted {
		out = append(out, write{key: k})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

func sortedKeys(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}
