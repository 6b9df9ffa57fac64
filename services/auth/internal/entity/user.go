package entity

import "creatitube/pkg/models"

type User struct {
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	AvatarURL string          `json:"avatarUrl"`
	Role      models.UserRole `json:"role"`
	Password  string          `json:"-"`
}

func (u *User) Profile() models.User {
	return models.User{Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL, Role: u.Role}
}
