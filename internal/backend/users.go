package backend

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// Get returns a user document by id
func (b *Backend) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := b.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, remote.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Put creates or replaces a user document
func (b *Backend) Put(ctx context.Context, user models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := b.db.WithContext(ctx).Save(&user).Error; err != nil {
		return &remote.WriteError{Op: "create", Err: err}
	}
	return nil
}

// UpdateSettings applies profile and preference changes to an existing user
func (b *Backend) UpdateSettings(ctx context.Context, id, displayName string, settings models.Settings) error {
	user, err := b.Get(ctx, id)
	if err != nil {
		return err
	}

	user.DisplayName = displayName
	user.Settings = settings
	if err := b.db.WithContext(ctx).Save(&user).Error; err != nil {
		return &remote.WriteError{Op: "update", Err: err}
	}
	return nil
}

// List returns every user document
func (b *Backend) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := b.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

var _ remote.UserCollection = (*Backend)(nil)
