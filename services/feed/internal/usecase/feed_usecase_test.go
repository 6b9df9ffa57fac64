package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"creatitube/pkg/ai"
	"creatitube/pkg/cache"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/services/feed/internal/repo/persistent"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func seedCatalogue(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	videos := []models.ContentItem{
		{ID: "1", Kind: models.KindVideo, Title: "Cabin", Tags: []string{"woodworking", "diy"}},
		{ID: "2", Kind: models.KindVideo, Title: "Pixel", Tags: []string{"pixel art"}},
	}
	images := []models.ContentItem{
		{ID: "img1", Title: "Chair", Tags: []string{"Woodworking"}},
	}
	require.NoError(t, store.Update(ctx, []string{kv.KeyVideos, kv.KeyImages}, func(tx kv.Tx) error {
		if err := tx.Put(kv.KeyVideos, videos); err != nil {
			return err
		}
		return tx.Put(kv.KeyImages, images)
	}))
	return store
}

func newUseCase(t *testing.T, gen ai.TextGenerator, highlights *cache.TextCache) FeedUseCase {
	t.Helper()
	log := logger.New()
	return NewFeedUseCase(persistent.NewFeedRepository(seedCatalogue(t)), ai.NewAssistant(gen, log), highlights, log)
}

func TestHomeFeed_FiltersVideosOnly(t *testing.T) {
	uc := newUseCase(t, nil, nil)

	feed, err := uc.HomeFeed(context.Background(), []string{"WOOD", " "})
	require.NoError(t, err)
	require.Len(t, feed.Videos, 1)
	assert.Equal(t, "1", feed.Videos[0].ID)
	assert.Equal(t, []string{"WOOD"}, feed.Topics)
	require.Len(t, feed.Images, 1)
	assert.Equal(t, models.KindImage, feed.Images[0].Kind)

	pixel, err := uc.HomeFeed(context.Background(), []string{"pixel"})
	require.NoError(t, err)
	require.Len(t, pixel.Videos, 1)
	assert.Equal(t, "2", pixel.Videos[0].ID)
	require.Len(t, pixel.Images, 1)
	assert.Equal(t, "img1", pixel.Images[0].ID)

	all, err := uc.HomeFeed(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Videos, 2)
	assert.Len(t, all.Images, 1)
}

func TestSuggestTopics(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateJSON").Return(`{"topics":["pixel art","pottery"]}`, nil).Once()
	uc := newUseCase(t, gen, nil)

	suggestion, err := uc.SuggestTopics(context.Background(), "retro games")
	require.NoError(t, err)
	assert.False(t, suggestion.Fallback)
	assert.Equal(t, []string{"pixel art", "pottery"}, suggestion.Topics)

	_, err = uc.SuggestTopics(context.Background(), "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSuggestTopics_FallbackInStubMode(t *testing.T) {
	uc := newUseCase(t, nil, nil)

	suggestion, err := uc.SuggestTopics(context.Background(), "woodworking")
	require.NoError(t, err)
	assert.True(t, suggestion.Fallback)
	assert.NotEmpty(t, suggestion.Note)
	assert.Equal(t, ai.FallbackTopics(), suggestion.Topics)
}

func TestSearch(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateJSON").Return(`{"topics":["pixel"]}`, nil).Once()
	gen.On("GenerateJSON").Return("", errors.New("timeout")).Once()
	uc := newUseCase(t, gen, nil)

	result, err := uc.Search(context.Background(), "8-bit graphics")
	require.NoError(t, err)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "2", result.Videos[0].ID)
	assert.Len(t, result.Images, 1)
	assert.False(t, result.Fallback)

	result, err = uc.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, ai.FallbackTopics(), result.Topics)
	assert.Len(t, result.Videos, 2)
	assert.Len(t, result.Images, 1)

	_, err = uc.Search(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestHighlights_CachesOnlyRealText(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	highlights := cache.NewTextCache(client, "highlights", time.Hour)

	gen := new(MockGenerator)
	gen.On("GenerateText").Return("", errors.New("quota")).Once()
	gen.On("GenerateText").Return("* Build a cabin", nil).Once()
	uc := newUseCase(t, gen, highlights)
	ctx := context.Background()

	first, err := uc.Highlights(ctx, "Cabin", "Wood")
	require.NoError(t, err)
	assert.Equal(t, ai.HighlightsFailedMsg, first.Text)

	second, err := uc.Highlights(ctx, "Cabin", "Wood")
	require.NoError(t, err)
	assert.Equal(t, "* Build a cabin", second.Text)
	assert.False(t, second.Cached)

	third, err := uc.Highlights(ctx, "Cabin", "Wood")
	require.NoError(t, err)
	assert.True(t, third.Cached)
	assert.Equal(t, "* Build a cabin", third.Text)
	gen.AssertNumberOfCalls(t, "GenerateText", 2)

	_, err = uc.Highlights(ctx, " ", "Wood")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestHighlights_StubModeWithoutCache(t *testing.T) {
	uc := newUseCase(t, nil, nil)

	got, err := uc.Highlights(context.Background(), "Cabin", "Wood")
	require.NoError(t, err)
	assert.Equal(t, ai.HighlightsUnavailableMsg, got.Text)
}
