package middleware

import (
	"context"
	"net/http"
	"strings"

	"creatitube/pkg/jwt"
	"creatitube/pkg/models"
	"creatitube/pkg/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserEmail  = "user_email"
	KeyUserName   = "user_name"
	KeyUserAvatar = "user_avatar"
	KeyUserRole   = "user_role"
	KeySessionID  = "session_id"
)

// SessionLookup reports whether a session id is still live.
type SessionLookup interface {
	Lookup(ctx context.Context, id string) (*session.Record, bool, error)
}

// AuthMiddleware requires a valid bearer token. When sessions is non-nil the
// token's session must also still exist, so logged-out tokens are refused.
func AuthMiddleware(jwtService *jwt.Service, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if sessions != nil {
			rec, ok, err := sessions.Lookup(c.Request.Context(), claims.SessionID())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Session check failed"})
				c.Abort()
				return
			}
			if !ok || rec.Email != claims.Email {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has ended"})
				c.Abort()
				return
			}
		}

		c.Set(KeyUserEmail, claims.Email)
		c.Set(KeyUserName, claims.Name)
		c.Set(KeyUserAvatar, claims.AvatarURL)
		c.Set(KeyUserRole, claims.Role)
		c.Set(KeySessionID, claims.SessionID())
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUserRole) != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser rebuilds the signed-in user from the request context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	email := c.GetString(KeyUserEmail)
	if email == "" {
		return models.User{}, false
	}
	return models.User{
		Email:     email,
		Name:      c.GetString(KeyUserName),
		AvatarURL: c.GetString(KeyUserAvatar),
		Role:      models.UserRole(c.GetString(KeyUserRole)),
	}, true
}
