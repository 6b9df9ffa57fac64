package usecase

import (
	"context"
	"fmt"
	"strings"

	"creatitube/pkg/ai"
	"creatitube/pkg/cache"
	"creatitube/pkg/logger"
	"creatitube/pkg/metrics"
	"creatitube/pkg/models"
	"creatitube/services/feed/internal/entity"
	"creatitube/services/feed/internal/repo/persistent"
)

type FeedUseCase interface {
	SuggestTopics(ctx context.Context, interests string) (*entity.TopicSuggestion, error)
	Highlights(ctx context.Context, title, description string) (*entity.Highlights, error)
	HomeFeed(ctx context.Context, topics []string) (*entity.Feed, error)
	Search(ctx context.Context, query string) (*entity.SearchResult, error)
}

type feedUseCase struct {
	feedRepo   persistent.FeedRepository
	assistant  *ai.Assistant
	highlights *cache.TextCache
	logger     *logger.Logger
}

// NewFeedUseCase builds the feed. highlights may be nil to disable caching.
func NewFeedUseCase(feedRepo persistent.FeedRepository, assistant *ai.Assistant, highlights *cache.TextCache, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		feedRepo:   feedRepo,
		assistant:  assistant,
		highlights: highlights,
		logger:     logger,
	}
}

func (uc *feedUseCase) SuggestTopics(ctx context.Context, interests string) (*entity.TopicSuggestion, error) {
	interests = strings.TrimSpace(interests)
	if interests == "" {
		return nil, fmt.Errorf("%w: please tell us what you are interested in", models.ErrValidation)
	}

	topics, err := uc.assistant.SuggestTopics(ctx, interests)
	suggestion := &entity.TopicSuggestion{Topics: topics}
	if err != nil {
		suggestion.Fallback = true
		suggestion.Note = "Could not reach the recommendation model; showing popular topics instead."
	}
	return suggestion, nil
}

func (uc *feedUseCase) Highlights(ctx context.Context, title, description string) (*entity.Highlights, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	key := uc.highlights.Key(title, description)
	if text, ok, err := uc.highlights.Get(ctx, key); err != nil {
		uc.logger.Warn("Highlight cache read failed: %v", err)
	} else if ok {
		metrics.HighlightCache.WithLabelValues("hit").Inc()
		return &entity.Highlights{Text: text, Cached: true}, nil
	}
	metrics.HighlightCache.WithLabelValues("miss").Inc()

	text := uc.assistant.Highlights(ctx, title, description)
	if !ai.IsSentinel(text) {
		if err := uc.highlights.Set(ctx, key, text); err != nil {
			uc.logger.Warn("Highlight cache write failed: %v", err)
		}
	}
	return &entity.Highlights{Text: text}, nil
}

func (uc *feedUseCase) HomeFeed(ctx context.Context, topics []string) (*entity.Feed, error) {
	topics = models.CleanTags(topics)
	videos, err := uc.feedRepo.ListVideos(ctx)
	if err != nil {
		uc.logger.Error("Failed to load videos: %v", err)
		return nil, fmt.Errorf("failed to load feed")
	}
	images, err := uc.feedRepo.ListImages(ctx)
	if err != nil {
		uc.logger.Error("Failed to load images: %v", err)
		return nil, fmt.Errorf("failed to load feed")
	}
	return &entity.Feed{
		Topics: topics,
		Videos: models.FilterByTopics(videos, topics),
		Images: images,
	}, nil
}

// Search resolves query into topics through the assistant and filters the
// videos by them.
func (uc *feedUseCase) Search(ctx context.Context, query string) (*entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", models.ErrValidation)
	}

	suggestion, err := uc.SuggestTopics(ctx, query)
	if err != nil {
		return nil, err
	}
	feed, err := uc.HomeFeed(ctx, suggestion.Topics)
	if err != nil {
		return nil, err
	}
	return &entity.SearchResult{
		Query:    query,
		Feed:     *feed,
		Fallback: suggestion.Fallback,
		Note:     suggestion.Note,
	}, nil
}
