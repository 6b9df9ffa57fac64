package usecase

import (
	"context"
	"testing"

	"creatitube/pkg/jwt"
	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/pkg/session"
	"creatitube/services/auth/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	uc       *authUseCase
	store    kv.Store
	sessions *session.Store
	jwt      *jwt.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kv.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := session.NewStore(store)
	jwtService := jwt.NewService("test-secret")
	uc := NewAuthUseCase(persistent.NewUserRepository(store), sessions, jwtService, logger.New()).(*authUseCase)
	uc.bcryptCost = bcrypt.MinCost
	return &fixture{uc: uc, store: store, sessions: sessions, jwt: jwtService}
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, token, err := f.uc.Register(ctx, "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "https://picsum.photos/seed/Jane%20Doe/40/40", user.AvatarURL)
	assert.Empty(t, user.Password)

	claims, err := f.jwt.ValidateToken(token)
	require.NoError(t, err)
	_, ok, err := f.sessions.Lookup(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.uc.Register(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = f.uc.Register(ctx, "Other Jane", "jane@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "user with this email already exists", err.Error())
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.uc.Register(context.Background(), "", "a@b.c", "secret1")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = f.uc.Register(context.Background(), "A", "a@b.c", "123")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.uc.Register(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)

	user, token, err := f.uc.Login(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Jane", user.Name)
	assert.Empty(t, user.Password)

	_, _, err = f.uc.Login(ctx, "jane@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.uc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLogout_EndsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, token, err := f.uc.Register(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token)
	require.NoError(t, err)

	user, err := f.uc.CurrentUser(ctx, claims.Email, claims.SessionID())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	require.NoError(t, f.uc.Logout(ctx, claims.SessionID()))
	_, ok, err := f.sessions.Lookup(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCurrentUser_MissingUserClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.sessions.Create(ctx, "ghost@example.com", f.jwt.TTL())
	require.NoError(t, err)

	_, err = f.uc.CurrentUser(ctx, "ghost@example.com", id)
	assert.ErrorIs(t, err, ErrNoSession)

	_, ok, err := f.sessions.Lookup(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTheme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	theme, err := f.uc.GetTheme(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, theme)

	require.NoError(t, f.uc.SetTheme(ctx, "jane@example.com", models.ThemeDark))
	theme, err = f.uc.GetTheme(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)

	assert.ErrorIs(t, f.uc.SetTheme(ctx, "jane@example.com", "sepia"), ErrInvalidTheme)
}
