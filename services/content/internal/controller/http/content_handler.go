package http

import (
	"errors"
	"net/http"

	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/services/content/internal/entity"
	"creatitube/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
}

func NewContentHandler(contentUseCase usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
	}
}

// TagList accepts either a comma separated string or a list of strings.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = models.ParseTags(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("tags must be a string or a list of strings")
	}
	*t = models.CleanTags(list)
	return nil
}

type CreateContentRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Tags         TagList `json:"tags"`
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Duration     string  `json:"duration"`
	ImageURL     string  `json:"imageUrl"`
	ForSale      bool    `json:"forSale"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

func (r CreateContentRequest) toEntity(kind models.ContentKind) entity.CreateContent {
	input := entity.CreateContent{
		Kind:         kind,
		Title:        r.Title,
		Description:  r.Description,
		Tags:         r.Tags,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Duration:     r.Duration,
		ImageURL:     r.ImageURL,
	}
	if r.ForSale {
		input.Listing = &entity.Listing{Price: r.Price, Quantity: r.Quantity}
	}
	return input
}

type CommentRequest struct {
	Text string `json:"text"`
}

type ReactionRequest struct {
	Reaction entity.Reaction `json:"reaction" binding:"required"`
}

// ListVideos godoc
// @Summary      List videos
// @Tags         content
// @Produce      json
// @Success      200  {array}   models.ContentItem
// @Router       /videos [get]
func (h *ContentHandler) ListVideos(c *gin.Context) {
	videos, err := h.contentUseCase.ListVideos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, videos)
}

// ListImages godoc
// @Summary      List images
// @Tags         content
// @Produce      json
// @Success      200  {array}   models.ContentItem
// @Router       /images [get]
func (h *ContentHandler) ListImages(c *gin.Context) {
	images, err := h.contentUseCase.ListImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, images)
}

// ListShorts godoc
// @Summary      List shorts
// @Tags         content
// @Produce      json
// @Success      200  {array}   models.Short
// @Router       /shorts [get]
func (h *ContentHandler) ListShorts(c *gin.Context) {
	shorts, err := h.contentUseCase.ListShorts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shorts)
}

// ListCreations godoc
// @Summary      List my creations
// @Description  Videos and images uploaded by the signed-in user
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.ContentItem
// @Failure      401  {object}  map[string]string
// @Router       /creations [get]
func (h *ContentHandler) ListCreations(c *gin.Context) {
	creations, err := h.contentUseCase.ListCreations(c.Request.Context(), c.GetString(middleware.KeyUserEmail))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, creations)
}

// Create godoc
// @Summary      Upload a video or an image
// @Description  Prepends the content; with forSale a product is listed in the same write
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateContentRequest true "Content data"
// @Success      201  {object}  entity.Created
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /videos [post]
// @Router       /images [post]
func (h *ContentHandler) Create(kind models.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateContentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		created, err := h.contentUseCase.Create(c.Request.Context(), user, req.toEntity(kind))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// AddComment godoc
// @Summary      Comment on a video or an image
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "videos or images"
// @Param        id   path string true "Content ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  models.ContentItem
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{kind}/{id}/comments [post]
func (h *ContentHandler) AddComment(kind models.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := h.contentUseCase.AddComment(c.Request.Context(), user, kind, c.Param("id"), req.Text)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// React godoc
// @Summary      Like or dislike a video or an image
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "videos or images"
// @Param        id   path string true "Content ID"
// @Param        request body ReactionRequest true "like or dislike"
// @Success      200  {object}  models.ContentItem
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{kind}/{id}/reactions [post]
func (h *ContentHandler) React(kind models.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := h.contentUseCase.React(c.Request.Context(), kind, c.Param("id"), req.Reaction)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// UploadMedia godoc
// @Summary      Upload a media file
// @Description  Stores the file in object storage and returns its URL
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind formData string true "video or image"
// @Param        file formData file true "Media file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /media [post]
func (h *ContentHandler) UploadMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	kind := models.ContentKind(c.PostForm("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be video or image"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	url, err := h.contentUseCase.UploadMedia(c.Request.Context(), user, kind, file)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *ContentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, usecase.ErrEmptyComment),
		errors.Is(err, usecase.ErrInvalidReaction),
		errors.Is(err, usecase.ErrInvalidMedia):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
