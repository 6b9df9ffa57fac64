package entity

import "creatitube/pkg/models"

// Placeholders used until the client supplies real values.
const (
	DefaultThumbnailURL = "https://picsum.photos/seed/newvideo/400/225"
	DefaultDuration     = "0:00"
)

type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Listing is the optional product attached to an upload.
type Listing struct {
	Price    float64
	Quantity int
}

type CreateContent struct {
	Kind         models.ContentKind
	Title        string
	Description  string
	Tags         []string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	ImageURL     string
	Listing      *Listing
}

// Created is the result of an upload: the content and, when listed for
// sale, its product.
type Created struct {
	Content models.ContentItem `json:"content"`
	Product *models.Product    `json:"product,omitempty"`
}
