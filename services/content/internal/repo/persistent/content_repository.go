package persistent

import (
	"context"
	"fmt"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"
)

var ErrContentNotFound = fmt.Errorf("content %w", models.ErrNotFound)

type ContentRepository interface {
	List(ctx context.Context, kind models.ContentKind) ([]models.ContentItem, error)
	ListShorts(ctx context.Context) ([]models.Short, error)
	// Create prepends item and, when product is non-nil, appends it to the
	// product catalogue in the same transaction.
	Create(ctx context.Context, item *models.ContentItem, product *models.Product) error
	// Modify applies fn to the item with id and stores the result.
	Modify(ctx context.Context, kind models.ContentKind, id string, fn func(item *models.ContentItem) error) (*models.ContentItem, error)
}

type contentRepository struct {
	store kv.Store
}

func NewContentRepository(store kv.Store) ContentRepository {
	return &contentRepository{store: store}
}

func keyFor(kind models.ContentKind) string {
	if kind == models.KindImage {
		return kv.KeyImages
	}
	return kv.KeyVideos
}

func (r *contentRepository) List(ctx context.Context, kind models.ContentKind) ([]models.ContentItem, error) {
	items, err := kv.Read[[]models.ContentItem](ctx, r.store, keyFor(kind))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	for i := range items {
		// Records written before kinds existed carry no discriminant.
		if items[i].Kind == "" {
			items[i].Kind = kind
		}
	}
	return items, nil
}

func (r *contentRepository) ListShorts(ctx context.Context) ([]models.Short, error) {
	shorts, err := kv.Read[[]models.Short](ctx, r.store, kv.KeyShorts)
	if err != nil {
		return nil, err
	}
	if shorts == nil {
		shorts = []models.Short{}
	}
	return shorts, nil
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem, product *models.Product) error {
	contentKey := keyFor(item.Kind)
	keys := []string{contentKey}
	if product != nil {
		keys = append(keys, kv.KeyProducts)
	}

	return r.store.Update(ctx, keys, func(tx kv.Tx) error {
		if product != nil {
			products, err := kv.Load[[]models.Product](tx, kv.KeyProducts)
			if err != nil {
				return err
			}
			if err := tx.Put(kv.KeyProducts, append(products, *product)); err != nil {
				return err
			}
		}

		items, err := kv.Load[[]models.ContentItem](tx, contentKey)
		if err != nil {
			return err
		}
		items = append([]models.ContentItem{*item}, items...)
		return tx.Put(contentKey, items)
	})
}

func (r *contentRepository) Modify(ctx context.Context, kind models.ContentKind, id string, fn func(item *models.ContentItem) error) (*models.ContentItem, error) {
	key := keyFor(kind)
	var updated models.ContentItem
	err := r.store.Update(ctx, []string{key}, func(tx kv.Tx) error {
		items, err := kv.Load[[]models.ContentItem](tx, key)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return err
			}
			updated = items[i]
			return tx.Put(key, items)
		}
		return ErrContentNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
