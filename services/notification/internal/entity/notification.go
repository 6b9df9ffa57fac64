package entity

import "creatitube/pkg/models"

// Page is one window of a user's inbox, newest first.
type Page struct {
	Notifications []models.Notification `json:"notifications"`
	Count         int                   `json:"count"`
	Total         int                   `json:"total"`
	Offset        int                   `json:"offset"`
}
