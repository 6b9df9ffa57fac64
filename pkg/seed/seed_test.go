package seed

import (
	"context"
	"testing"
	"time"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestApply_FreshStore(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	res, err := Apply(ctx, store, Options{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Len(t, res.Written, 6)

	users, err := kv.Read[map[string]models.Account](ctx, store, kv.KeyUsers)
	require.NoError(t, err)
	require.Contains(t, users, AdminEmail)
	assert.Equal(t, models.RoleAdmin, users[AdminEmail].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users["chloe@test.com"].PasswordHash), []byte("password123")))
	assert.Equal(t, "https://picsum.photos/seed/chloe/40/40", users["chloe@test.com"].AvatarURL)

	videos, err := kv.Read[[]models.ContentItem](ctx, store, kv.KeyVideos)
	require.NoError(t, err)
	assert.Len(t, videos, 6)
	for _, v := range videos {
		assert.NoError(t, v.Validate())
	}

	orders, err := kv.Read[[]models.Order](ctx, store, kv.KeyOrders)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestApply_KeepsExistingRecords(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, []string{kv.KeyProducts}, func(tx kv.Tx) error {
		return tx.Put(kv.KeyProducts, []models.Product{{ID: "mine", Name: "Mine", Price: 1, Quantity: 1}})
	}))

	res, err := Apply(ctx, store, Options{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.NotContains(t, res.Written, kv.KeyProducts)

	products, err := kv.Read[[]models.Product](ctx, store, kv.KeyProducts)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "mine", products[0].ID)

	res, err = Apply(ctx, store, Options{BcryptCost: bcrypt.MinCost, Reset: true})
	require.NoError(t, err)
	assert.Contains(t, res.Written, kv.KeyProducts)
	products, err = kv.Read[[]models.Product](ctx, store, kv.KeyProducts)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	images := Images(now)
	require.Len(t, images, 3)
	assert.Equal(t, "prod2", images[2].ProductID)
	for _, img := range images {
		assert.NoError(t, img.Validate())
	}

	assert.Len(t, Shorts(), 5)
	assert.Len(t, Products(), 2)
	assert.Equal(t, "prod1", Videos(now)[0].ProductID)
}
