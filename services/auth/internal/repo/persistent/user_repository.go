package persistent

import (
	"context"
	"errors"
	"fmt"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"
	"creatitube/services/auth/internal/entity"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = fmt.Errorf("user %w", models.ErrNotFound)
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetTheme(ctx context.Context, email string) (models.Theme, error)
	SetTheme(ctx context.Context, email string, theme models.Theme) error
}

type userRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) UserRepository {
	return &userRepository{store: store}
}

// Create inserts user unless the email is already registered.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.store.Update(ctx, []string{kv.KeyUsers}, func(tx kv.Tx) error {
		users, err := kv.Load[map[string]models.Account](tx, kv.KeyUsers)
		if err != nil {
			return err
		}
		if users == nil {
			users = make(map[string]models.Account)
		}
		if _, exists := users[user.Email]; exists {
			return ErrUserExists
		}
		users[user.Email] = ToAccount(user)
		return tx.Put(kv.KeyUsers, users)
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := kv.Read[map[string]models.Account](ctx, r.store, kv.KeyUsers)
	if err != nil {
		return nil, err
	}
	acc, ok := users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return ToUserEntity(email, acc), nil
}

func (r *userRepository) GetTheme(ctx context.Context, email string) (models.Theme, error) {
	themes, err := kv.Read[map[string]models.Theme](ctx, r.store, kv.KeyTheme)
	if err != nil {
		return "", err
	}
	if theme, ok := themes[email]; ok && theme.Valid() {
		return theme, nil
	}
	return models.ThemeLight, nil
}

func (r *userRepository) SetTheme(ctx context.Context, email string, theme models.Theme) error {
	return r.store.Update(ctx, []string{kv.KeyTheme}, func(tx kv.Tx) error {
		themes, err := kv.Load[map[string]models.Theme](tx, kv.KeyTheme)
		if err != nil {
			return err
		}
		if themes == nil {
			themes = make(map[string]models.Theme)
		}
		themes[email] = theme
		return tx.Put(kv.KeyTheme, themes)
	})
}
