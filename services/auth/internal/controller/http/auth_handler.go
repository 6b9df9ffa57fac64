package http

import (
	"errors"
	"net/http"

	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/services/auth/internal/entity"
	"creatitube/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ThemeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account and open a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate user and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  End the current session; its token stops working everywhere
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUseCase.Logout(c.Request.Context(), c.GetString(middleware.KeySessionID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me godoc
// @Summary      Get current user info
// @Description  Get the profile of the signed-in user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.KeyUserEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authUseCase.CurrentUser(c.Request.Context(), email, c.GetString(middleware.KeySessionID))
	if err != nil {
		if errors.Is(err, usecase.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetTheme godoc
// @Summary      Get theme preference
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /preferences/theme [get]
func (h *AuthHandler) GetTheme(c *gin.Context) {
	theme, err := h.authUseCase.GetTheme(c.Request.Context(), c.GetString(middleware.KeyUserEmail))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetTheme godoc
// @Summary      Set theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ThemeRequest true "light or dark"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /preferences/theme [put]
func (h *AuthHandler) SetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUseCase.SetTheme(c.Request.Context(), c.GetString(middleware.KeyUserEmail), req.Theme); err != nil {
		if errors.Is(err, usecase.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
