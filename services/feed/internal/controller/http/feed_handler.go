package http

import (
	"errors"
	"net/http"
	"strings"

	"creatitube/pkg/models"
	"creatitube/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

type TopicsRequest struct {
	Interests string `json:"interests"`
}

type HighlightsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestTopics godoc
// @Summary      Suggest topics
// @Description  Turns free-text interests into five topics; falls back to popular topics when the model is unavailable
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        request body TopicsRequest true "Interests"
// @Success      200  {object}  entity.TopicSuggestion
// @Failure      400  {object}  map[string]string
// @Router       /topics [post]
func (h *FeedHandler) SuggestTopics(c *gin.Context) {
	var req TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.feedUseCase.SuggestTopics(c.Request.Context(), req.Interests)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// Highlights godoc
// @Summary      Video highlights
// @Description  Short markdown summary of a video
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        request body HighlightsRequest true "Video"
// @Success      200  {object}  entity.Highlights
// @Failure      400  {object}  map[string]string
// @Router       /highlights [post]
func (h *FeedHandler) Highlights(c *gin.Context) {
	var req HighlightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	highlights, err := h.feedUseCase.Highlights(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, highlights)
}

// HomeFeed godoc
// @Summary      Home feed
// @Description  Videos and images whose tags match any of the topics
// @Tags         feed
// @Produce      json
// @Param        topics query string false "Comma separated topics"
// @Success      200  {object}  entity.Feed
// @Router       /feed [get]
func (h *FeedHandler) HomeFeed(c *gin.Context) {
	var topics []string
	if raw := c.Query("topics"); raw != "" {
		topics = strings.Split(raw, ",")
	}

	feed, err := h.feedUseCase.HomeFeed(c.Request.Context(), topics)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Search godoc
// @Summary      Search
// @Description  Resolves the query into topics and returns the matching feed
// @Tags         feed
// @Produce      json
// @Param        q query string true "Search query"
// @Success      200  {object}  entity.SearchResult
// @Failure      400  {object}  map[string]string
// @Router       /feed/search [get]
func (h *FeedHandler) Search(c *gin.Context) {
	result, err := h.feedUseCase.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
