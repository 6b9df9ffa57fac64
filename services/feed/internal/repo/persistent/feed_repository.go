package persistent

import (
	"context"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"
)

type FeedRepository interface {
	ListVideos(ctx context.Context) ([]models.ContentItem, error)
	ListImages(ctx context.Context) ([]models.ContentItem, error)
}

type feedRepository struct {
	store kv.Store
}

func NewFeedRepository(store kv.Store) FeedRepository {
	return &feedRepository{store: store}
}

func (r *feedRepository) ListVideos(ctx context.Context) ([]models.ContentItem, error) {
	return r.list(ctx, kv.KeyVideos, models.KindVideo)
}

func (r *feedRepository) ListImages(ctx context.Context) ([]models.ContentItem, error) {
	return r.list(ctx, kv.KeyImages, models.KindImage)
}

func (r *feedRepository) list(ctx context.Context, key string, kind models.ContentKind) ([]models.ContentItem, error) {
	items, err := kv.Read[[]models.ContentItem](ctx, r.store, key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	for i := range items {
		if items[i].Kind == "" {
			items[i].Kind = kind
		}
	}
	return items, nil
}
