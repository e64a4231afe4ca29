package models

import (
	"strings"
	"time"
)

// User roles
const (
	RoleOwner  = "Owner"
	RoleViewer = "Viewer"
)

// Settings holds per-user preferences
type Settings struct {
	Notifications bool   `json:"notifications"`
	EmailDigest   bool   `json:"email_digest"`
	Theme         string `json:"theme"`
}

// DefaultSettings are applied when a user document is first created
func DefaultSettings() Settings {
	return Settings{Notifications: true, EmailDigest: false, Theme: "light"}
}

// User is an account document in the users collection
type User struct {
	ID          string    `json:"id" gorm:"primarykey"`
	Email       string    `json:"email" gorm:"not null"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Placeholder bool      `json:"placeholder"` // invited but not yet signed up
	Settings    Settings  `json:"settings" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayNameFromEmail derives a default display name from the address
// local part, matching what the account service does on first sign-in.
func DisplayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
