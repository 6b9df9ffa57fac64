package persistent

import (
	"creatitube/pkg/models"
	"creatitube/services/auth/internal/entity"
)

func ToUserEntity(email string, m models.Account) *entity.User {
	profile := m.Profile(email)
	return &entity.User{
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		Role:      profile.Role,
		Password:  m.PasswordHash,
	}
}

func ToAccount(e *entity.User) models.Account {
	return models.Account{
		Name:         e.Name,
		AvatarURL:    e.AvatarURL,
		Role:         e.Role,
		PasswordHash: e.Password,
	}
}
