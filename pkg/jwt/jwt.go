package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// Identity is the profile embedded in a token so that services can build
// the channel/buyer of a request without a user lookup.
type Identity struct {
	Email     string
	Name      string
	AvatarURL string
	Role      string
}

type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the id of the session the token was issued for.
func (c *Claims) SessionID() string {
	return c.ID
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
}

func NewService(secretKey string) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       defaultTTL,
	}
}

// WithTTL overrides the token lifetime.
func (s *Service) WithTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// TTL is the lifetime of newly issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) GenerateToken(identity Identity, sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:     identity.Email,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		Role:      identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
