// Package account manages user documents: profile, preferences and
// the team roster.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// Service wraps the remote user collection
type Service struct {
	users remote.UserCollection
	now   func() time.Time
}

// NewService creates an account service over the user collection
func NewService(users remote.UserCollection) *Service {
	return &Service{users: users, now: time.Now}
}

// EnsureUser returns the user document for an authenticated identity,
// creating it with defaults on first sign-in.
func (s *Service) EnsureUser(ctx context.Context, id, email string) (models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, remote.ErrNotFound) {
		return models.User{}, err
	}

	user = models.User{
		ID:          id,
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Role:        models.RoleOwner,
		Settings:    models.DefaultSettings(),
		CreatedAt:   s.now(),
	}
	if err := s.users.Put(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SaveSettings updates the user's display name and preferences
func (s *Service) SaveSettings(ctx context.Context, id, displayName string, settings models.Settings) error {
	return s.users.UpdateSettings(ctx, id, displayName, settings)
}

// Team lists every member visible to the user
func (s *Service) Team(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Invite records a placeholder Viewer account for an invited address.
// The invitee replaces it with a real document on first sign-in.
func (s *Service) Invite(ctx context.Context, email string) (models.User, error) {
	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Role:        models.RoleViewer,
		Placeholder: true,
		Settings:    models.DefaultSettings(),
		CreatedAt:   s.now(),
	}
	if err := s.users.Put(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// exportDoc is the shape written by Export
type exportDoc struct {
	User struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
	Settings   models.Settings `json:"settings"`
	ExportedAt time.Time       `json:"exported_at"`
}

// Export writes the user's profile and settings as indented JSON
func (s *Service) Export(ctx context.Context, id string, w io.Writer) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}

	var doc exportDoc
	doc.User.Email = user.Email
	doc.User.DisplayName = user.DisplayName
	doc.Settings = user.Settings
	doc.ExportedAt = s.now()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
