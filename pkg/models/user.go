package models

import (
	"fmt"
	"net/url"
)

type UserRole string

const (
	RoleViewer UserRole = "viewer"
	RoleAdmin  UserRole = "admin"
)

// User is the public profile of an account. The password never leaves the
// auth service.
type User struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatarUrl"`
	Role      UserRole `json:"role,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AvatarFor returns the generated avatar used for accounts without an upload.
func AvatarFor(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/40/40", url.PathEscape(seed))
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Account is the stored form of a user, keyed by email in the users record.
type Account struct {
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"passwordHash"`
}

// Profile returns the public view of the account.
func (a Account) Profile(email string) User {
	role := a.Role
	if role == "" {
		role = RoleViewer
	}
	return User{Email: email, Name: a.Name, AvatarURL: a.AvatarURL, Role: role}
}
