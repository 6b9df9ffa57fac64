// Package session persists login sessions in the shared key-value store so
// that a token can be revoked before it expires.
package session

import (
	"context"
	"time"

	"creatitube/pkg/kv"

	"github.com/google/uuid"
)

type Record struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

type Store struct {
	kv  kv.Store
	now func() time.Time
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

// Create opens a session for email and returns its id. The record carries
// the same ttl in the backend so abandoned sessions are dropped.
func (s *Store) Create(ctx context.Context, email string, ttl time.Duration) (string, error) {
	id := uuid.New().String()
	rec := Record{Email: email, ExpiresAt: s.now().Add(ttl).UTC()}
	if err := s.kv.Put(ctx, kv.SessionKey(id), rec, ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Lookup returns the live session for id. Expired records are removed.
func (s *Store) Lookup(ctx context.Context, id string) (*Record, bool, error) {
	if id == "" {
		return nil, false, nil
	}
	var rec Record
	ok, err := s.kv.Get(ctx, kv.SessionKey(id), &rec)
	if err != nil || !ok {
		return nil, false, err
	}
	if rec.Expired(s.now()) {
		_ = s.kv.Delete(ctx, kv.SessionKey(id))
		return nil, false, nil
	}
	return &rec, true, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.kv.Delete(ctx, kv.SessionKey(id))
}
