//go:build integration

package kv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("creatitube"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenPostgres(dsn)
	require.NoError(t, err)
	store := NewGormStore(db)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGormStore_RoundTrip(t *testing.T) {
	s := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, []string{"a"}, func(tx Tx) error {
		return tx.Put("a", counter{N: 3})
	}))
	c, err := Read[counter](ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, c.N)

	require.NoError(t, s.Delete(ctx, "a"))
	ok, err := s.Get(ctx, "a", &c)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStore_ConcurrentIncrements(t *testing.T) {
	s := newGormStore(t)
	ctx := context.Background()
	const workers = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, []string{"counter"}, func(tx Tx) error {
				c, err := Load[counter](tx, "counter")
				if err != nil {
					return err
				}
				c.N++
				return tx.Put("counter", c)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := Read[counter](ctx, s, "counter")
	require.NoError(t, err)
	assert.Equal(t, workers, c.N)
}

func TestGormStore_PutExpiresAndSweeps(t *testing.T) {
	s := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "old", counter{N: 1}, 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	var c counter
	ok, err := s.Get(ctx, "old", &c)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "new", counter{N: 2}, time.Hour))
	var rows int64
	require.NoError(t, s.db.Model(&Record{}).Where("record_key = ?", "old").Count(&rows).Error)
	assert.Zero(t, rows)

	c, err = Read[counter](ctx, s, "new")
	require.NoError(t, err)
	assert.Equal(t, 2, c.N)
}
