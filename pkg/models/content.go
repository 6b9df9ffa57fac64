package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentKind discriminates the payload carried by a ContentItem.
type ContentKind string

const (
	KindVideo ContentKind = "video"
	KindImage ContentKind = "image"
)

func (k ContentKind) Valid() bool {
	return k == KindVideo || k == KindImage
}

type Comment struct {
	User      User      `json:"user"`
	Text      string    `json:"text"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

type VideoDetails struct {
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     string    `json:"duration"`
	Views        int64     `json:"views"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type ImageDetails struct {
	ImageURL string `json:"imageUrl"`
}

// ContentItem is a video or an image. Exactly one of Video and Image is set,
// matching Kind.
type ContentItem struct {
	ID          string        `json:"id"`
	Kind        ContentKind   `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Channel     User          `json:"channel"`
	Likes       int64         `json:"likes"`
	Dislikes    int64         `json:"dislikes"`
	Comments    []Comment     `json:"comments"`
	ProductID   string        `json:"productId,omitempty"`
	Video       *VideoDetails `json:"video,omitempty"`
	Image       *ImageDetails `json:"image,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// EnsureID assigns a kind-prefixed id when none is set.
func (c *ContentItem) EnsureID() {
	if c.ID == "" {
		c.ID = fmt.Sprintf("%s_%s", c.Kind, uuid.New().String())
	}
}

func (c *ContentItem) Validate() error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	switch c.Kind {
	case KindVideo:
		if c.Video == nil || c.Image != nil {
			return fmt.Errorf("%w: video content must carry only video details", ErrValidation)
		}
	case KindImage:
		if c.Image == nil || c.Video != nil {
			return fmt.Errorf("%w: image content must carry only image details", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown content kind %q", ErrValidation, c.Kind)
	}
	return nil
}

// PreviewURL is the picture shown for the item: the image itself or the
// video thumbnail.
func (c *ContentItem) PreviewURL() string {
	switch {
	case c.Image != nil:
		return c.Image.ImageURL
	case c.Video != nil:
		return c.Video.ThumbnailURL
	}
	return ""
}

// MatchesTopics reports whether any tag contains any topic, ignoring case.
// An empty topic list matches everything.
func (c *ContentItem) MatchesTopics(topics []string) bool {
	if len(topics) == 0 {
		return true
	}
	for _, tag := range c.Tags {
		tag = strings.ToLower(tag)
		for _, topic := range topics {
			if strings.Contains(tag, strings.ToLower(topic)) {
				return true
			}
		}
	}
	return false
}

// FilterByTopics keeps the items matching topics, preserving order.
func FilterByTopics(items []ContentItem, topics []string) []ContentItem {
	if len(topics) == 0 {
		return items
	}
	filtered := make([]ContentItem, 0, len(items))
	for i := range items {
		if items[i].MatchesTopics(topics) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(raw string) []string {
	return CleanTags(strings.Split(raw, ","))
}

func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

type Short struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Channel      User      `json:"channel"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Dislikes     int64     `json:"dislikes"`
	Comments     []Comment `json:"comments"`
}
