package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"creatitube/pkg/jwt"
	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/pkg/session"
	"creatitube/services/auth/internal/entity"
	"creatitube/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidTheme       = errors.New("theme must be light or dark")
)

const minPasswordLength = 6

type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, email, sessionID string) (*entity.User, error)
	GetTheme(ctx context.Context, email string) (models.Theme, error)
	SetTheme(ctx context.Context, email string, theme models.Theme) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	sessions   *session.Store
	jwtService *jwt.Service
	bcryptCost int
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	sessions *session.Store,
	jwtService *jwt.Service,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtService: jwtService,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please fill in all fields", models.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters long", models.ErrValidation, minPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:     email,
		Name:      name,
		AvatarURL: models.AvatarFor(name),
		Role:      models.RoleViewer,
		Password:  string(hashedPassword),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrUserExists) {
			return nil, "", ErrEmailTaken
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, persistent.ErrUserNotFound) {
			uc.logger.Error("Failed to load user: %v", err)
		}
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Error("Failed to end session: %v", err)
		return fmt.Errorf("failed to end session")
	}
	return nil
}

// CurrentUser resolves the signed-in user. A session whose user record is
// gone is cleared.
func (uc *authUseCase) CurrentUser(ctx context.Context, email, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, persistent.ErrUserNotFound) {
		uc.logger.Warn("Session %s points at missing user %s, clearing it", sessionID, email)
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) GetTheme(ctx context.Context, email string) (models.Theme, error) {
	return uc.userRepo.GetTheme(ctx, email)
}

func (uc *authUseCase) SetTheme(ctx context.Context, email string, theme models.Theme) error {
	if !theme.Valid() {
		return ErrInvalidTheme
	}
	return uc.userRepo.SetTheme(ctx, email, theme)
}

func (uc *authUseCase) openSession(ctx context.Context, user *entity.User) (string, error) {
	sessionID, err := uc.sessions.Create(ctx, user.Email, uc.jwtService.TTL())
	if err != nil {
		uc.logger.Error("Failed to create session: %v", err)
		return "", fmt.Errorf("failed to create session")
	}

	token, err := uc.jwtService.GenerateToken(jwt.Identity{
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Role:      string(user.Role),
	}, sessionID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		_ = uc.sessions.Delete(ctx, sessionID)
		return "", fmt.Errorf("failed to generate token")
	}
	return token, nil
}
