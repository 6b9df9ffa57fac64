package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/services/content/internal/entity"
	"creatitube/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContentUseCase is a mock implementation of ContentUseCase
type MockContentUseCase struct {
	mock.Mock
}

func (m *MockContentUseCase) ListVideos(ctx context.Context) ([]models.ContentItem, error) {
	args := m.Called()
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentUseCase) ListImages(ctx context.Context) ([]models.ContentItem, error) {
	args := m.Called()
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentUseCase) ListShorts(ctx context.Context) ([]models.Short, error) {
	args := m.Called()
	return args.Get(0).([]models.Short), args.Error(1)
}

func (m *MockContentUseCase) ListCreations(ctx context.Context, email string) ([]models.ContentItem, error) {
	args := m.Called(email)
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentUseCase) Create(ctx context.Context, owner models.User, input entity.CreateContent) (*entity.Created, error) {
	args := m.Called(owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Created), args.Error(1)
}

func (m *MockContentUseCase) AddComment(ctx context.Context, user models.User, kind models.ContentKind, id, text string) (*models.ContentItem, error) {
	args := m.Called(user, kind, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentUseCase) React(ctx context.Context, kind models.ContentKind, id string, reaction entity.Reaction) (*models.ContentItem, error) {
	args := m.Called(kind, id, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentUseCase) UploadMedia(ctx context.Context, owner models.User, kind models.ContentKind, file *multipart.FileHeader) (string, error) {
	args := m.Called(owner.Email, kind, file.Filename)
	return args.String(0), args.Error(1)
}

var _ usecase.ContentUseCase = (*MockContentUseCase)(nil)

var chloe = models.User{Email: "chloe@test.com", Name: "Crafty Chloe", AvatarURL: "https://picsum.photos/seed/chloe/40/40", Role: models.RoleViewer}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func signedIn(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.KeyUserEmail, chloe.Email)
		c.Set(middleware.KeyUserName, chloe.Name)
		c.Set(middleware.KeyUserAvatar, chloe.AvatarURL)
		c.Set(middleware.KeyUserRole, string(chloe.Role))
		handler(c)
	}
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListVideos(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.GET("/videos", handler.ListVideos)

	videos := []models.ContentItem{{ID: "1", Kind: models.KindVideo, Title: "Cabin"}}
	mockUseCase.On("ListVideos").Return(videos, nil)

	req, _ := http.NewRequest("GET", "/videos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Cabin", got[0].Title)
}

func TestCreate_TagsAsString(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/videos", signedIn(handler.Create(models.KindVideo)))

	expected := entity.CreateContent{
		Kind:        models.KindVideo,
		Title:       "Spoon",
		Description: "Carving",
		Tags:        []string{"diy", "wood"},
		VideoURL:    "https://cdn/v.mp4",
	}
	mockUseCase.On("Create", chloe, expected).Return(&entity.Created{Content: models.ContentItem{ID: "video_1"}}, nil)

	w := postJSON(router, "/videos", `{"title":"Spoon","description":"Carving","tags":" diy, ,wood","videoUrl":"https://cdn/v.mp4"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreate_TagsAsListWithListing(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/images", signedIn(handler.Create(models.KindImage)))

	mockUseCase.On("Create", chloe, mock.MatchedBy(func(in entity.CreateContent) bool {
		return in.Kind == models.KindImage &&
			assert.ObjectsAreEqual([]string{"pottery"}, in.Tags) &&
			in.Listing != nil && in.Listing.Price == 12.5 && in.Listing.Quantity == 2
	})).Return(&entity.Created{}, nil)

	w := postJSON(router, "/images", `{"title":"Owl","description":"Clay","tags":["pottery",""],"imageUrl":"x","forSale":true,"price":12.5,"quantity":2}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreate_ValidationError(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/videos", signedIn(handler.Create(models.KindVideo)))

	mockUseCase.On("Create", chloe, mock.Anything).
		Return(nil, fmt.Errorf("%w: title and description are required", models.ErrValidation))

	w := postJSON(router, "/videos", `{"title":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title and description are required")
}

func TestCreate_BadTags(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/videos", signedIn(handler.Create(models.KindVideo)))

	w := postJSON(router, "/videos", `{"title":"a","description":"b","tags":42}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Unauthorized(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/videos", handler.Create(models.KindVideo))

	w := postJSON(router, "/videos", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddComment(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/videos/:id/comments", signedIn(handler.AddComment(models.KindVideo)))

	mockUseCase.On("AddComment", chloe, models.KindVideo, "1", "nice").Return(&models.ContentItem{ID: "1"}, nil)
	mockUseCase.On("AddComment", chloe, models.KindVideo, "1", "").Return(nil, usecase.ErrEmptyComment)
	mockUseCase.On("AddComment", chloe, models.KindVideo, "404", "nice").Return(nil, usecase.ErrNotFound)

	assert.Equal(t, http.StatusCreated, postJSON(router, "/videos/1/comments", `{"text":"nice"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(router, "/videos/1/comments", `{"text":""}`).Code)
	assert.Equal(t, http.StatusNotFound, postJSON(router, "/videos/404/comments", `{"text":"nice"}`).Code)
}

func TestReact(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/images/:id/reactions", signedIn(handler.React(models.KindImage)))

	mockUseCase.On("React", models.KindImage, "img1", entity.ReactionLike).Return(&models.ContentItem{ID: "img1", Likes: 1}, nil)
	mockUseCase.On("React", models.KindImage, "img1", entity.Reaction("love")).Return(nil, usecase.ErrInvalidReaction)

	w := postJSON(router, "/images/img1/reactions", `{"reaction":"like"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"likes":1`)

	assert.Equal(t, http.StatusBadRequest, postJSON(router, "/images/img1/reactions", `{"reaction":"love"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(router, "/images/img1/reactions", `{}`).Code)
}

func multipartBody(t *testing.T, kind, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if kind != "" {
		require.NoError(t, writer.WriteField("kind", kind))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write([]byte("bytes"))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/media", signedIn(handler.UploadMedia))

	mockUseCase.On("UploadMedia", chloe.Email, models.KindImage, "owl.png").Return("https://cdn/owl.png", nil)
	mockUseCase.On("UploadMedia", chloe.Email, models.KindVideo, "clip.mp4").Return("", usecase.ErrStorageUnavailable)

	tests := []struct {
		name     string
		kind     string
		filename string
		status   int
	}{
		{"uploaded", "image", "owl.png", http.StatusCreated},
		{"no storage", "video", "clip.mp4", http.StatusServiceUnavailable},
		{"bad kind", "short", "clip.mp4", http.StatusBadRequest},
		{"no file", "image", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.kind, tt.filename)
			req, _ := http.NewRequest("POST", "/media", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
