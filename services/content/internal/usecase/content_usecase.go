package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/pkg/s3"
	"creatitube/services/content/internal/entity"
	"creatitube/services/content/internal/repo/persistent"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotFound           = fmt.Errorf("content %w", models.ErrNotFound)
	ErrEmptyComment       = errors.New("comment text is required")
	ErrInvalidReaction    = errors.New("reaction must be like or dislike")
	ErrInvalidMedia       = errors.New("unsupported media type")
	ErrStorageUnavailable = errors.New("media storage is not configured")
)

// MediaStorage stores uploaded files and returns their public URL.
type MediaStorage interface {
	UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

type ContentUseCase interface {
	ListVideos(ctx context.Context) ([]models.ContentItem, error)
	ListImages(ctx context.Context) ([]models.ContentItem, error)
	ListShorts(ctx context.Context) ([]models.Short, error)
	ListCreations(ctx context.Context, email string) ([]models.ContentItem, error)
	Create(ctx context.Context, owner models.User, input entity.CreateContent) (*entity.Created, error)
	AddComment(ctx context.Context, user models.User, kind models.ContentKind, id, text string) (*models.ContentItem, error)
	React(ctx context.Context, kind models.ContentKind, id string, reaction entity.Reaction) (*models.ContentItem, error)
	UploadMedia(ctx context.Context, owner models.User, kind models.ContentKind, file *multipart.FileHeader) (string, error)
}

type contentUseCase struct {
	contentRepo persistent.ContentRepository
	storage     MediaStorage
	logger      *logger.Logger
	now         func() time.Time
}

func NewContentUseCase(contentRepo persistent.ContentRepository, storage MediaStorage, logger *logger.Logger) ContentUseCase {
	return &contentUseCase{
		contentRepo: contentRepo,
		storage:     storage,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *contentUseCase) ListVideos(ctx context.Context) ([]models.ContentItem, error) {
	return uc.contentRepo.List(ctx, models.KindVideo)
}

func (uc *contentUseCase) ListImages(ctx context.Context) ([]models.ContentItem, error) {
	return uc.contentRepo.List(ctx, models.KindImage)
}

func (uc *contentUseCase) ListShorts(ctx context.Context) ([]models.Short, error) {
	return uc.contentRepo.ListShorts(ctx)
}

// ListCreations returns the caller's videos followed by their images.
func (uc *contentUseCase) ListCreations(ctx context.Context, email string) ([]models.ContentItem, error) {
	creations := []models.ContentItem{}
	for _, kind := range []models.ContentKind{models.KindVideo, models.KindImage} {
		items, err := uc.contentRepo.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Channel.Email == email {
				creations = append(creations, item)
			}
		}
	}
	return creations, nil
}

func (uc *contentUseCase) Create(ctx context.Context, owner models.User, input entity.CreateContent) (*entity.Created, error) {
	now := uc.now()
	item := models.ContentItem{
		Kind:        input.Kind,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Tags:        models.CleanTags(input.Tags),
		Channel:     models.User{Email: owner.Email, Name: owner.Name, AvatarURL: owner.AvatarURL},
		Comments:    []models.Comment{},
		CreatedAt:   now,
	}

	switch input.Kind {
	case models.KindVideo:
		video := &models.VideoDetails{
			VideoURL:     input.VideoURL,
			ThumbnailURL: input.ThumbnailURL,
			Duration:     input.Duration,
			UploadedAt:   now,
		}
		if video.ThumbnailURL == "" {
			video.ThumbnailURL = entity.DefaultThumbnailURL
		}
		if video.Duration == "" {
			video.Duration = entity.DefaultDuration
		}
		item.Video = video
	case models.KindImage:
		item.Image = &models.ImageDetails{ImageURL: input.ImageURL}
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	var product *models.Product
	if input.Listing != nil {
		product = &models.Product{
			Name:        item.Title,
			Description: item.Description,
			Price:       input.Listing.Price,
			Quantity:    input.Listing.Quantity,
			ImageURL:    item.PreviewURL(),
			SellerEmail: owner.Email,
		}
		if err := product.Validate(); err != nil {
			return nil, err
		}
		product.EnsureID()
		item.ProductID = product.ID
	}
	item.EnsureID()

	if err := uc.contentRepo.Create(ctx, &item, product); err != nil {
		uc.logger.Error("Failed to create %s: %v", item.Kind, err)
		return nil, fmt.Errorf("failed to create content")
	}

	if product != nil {
		uc.logger.Info("Listed product %s for %s %s by %s", product.ID, item.Kind, item.ID, owner.Email)
	}
	return &entity.Created{Content: item, Product: product}, nil
}

func (uc *contentUseCase) AddComment(ctx context.Context, user models.User, kind models.ContentKind, id, text string) (*models.ContentItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	comment := models.Comment{
		User:      models.User{Email: user.Email, Name: user.Name, AvatarURL: user.AvatarURL},
		Text:      text,
		CreatedAt: uc.now(),
	}

	item, err := uc.contentRepo.Modify(ctx, kind, id, func(item *models.ContentItem) error {
		item.Comments = append([]models.Comment{comment}, item.Comments...)
		return nil
	})
	return item, uc.mapRepoError(err)
}

func (uc *contentUseCase) React(ctx context.Context, kind models.ContentKind, id string, reaction entity.Reaction) (*models.ContentItem, error) {
	if !reaction.Valid() {
		return nil, ErrInvalidReaction
	}
	item, err := uc.contentRepo.Modify(ctx, kind, id, func(item *models.ContentItem) error {
		if reaction == entity.ReactionLike {
			item.Likes++
		} else {
			item.Dislikes++
		}
		return nil
	})
	return item, uc.mapRepoError(err)
}

func (uc *contentUseCase) UploadMedia(ctx context.Context, owner models.User, kind models.ContentKind, file *multipart.FileHeader) (string, error) {
	if uc.storage == nil {
		return "", ErrStorageUnavailable
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	// The declared Content-Type is ignored; the type comes from the bytes.
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	contentType := detected.String()
	if !strings.HasPrefix(contentType, string(kind)+"/") {
		return "", fmt.Errorf("%w: please select a valid %s file", ErrInvalidMedia, kind)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	url, err := uc.storage.UploadFile(ctx, s3.MediaKey(owner.Email, string(kind), file.Filename), src, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload media for %s: %v", owner.Email, err)
		return "", fmt.Errorf("failed to upload file")
	}
	return url, nil
}

func (uc *contentUseCase) mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistent.ErrContentNotFound) {
		return ErrNotFound
	}
	uc.logger.Error("Content update failed: %v", err)
	return fmt.Errorf("failed to update content")
}
