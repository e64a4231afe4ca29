package backend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// CreateLog persists a completed session log
func (b *Backend) CreateLog(ctx context.Context, log models.TimeLog) (string, error) {
	log.ID = uuid.NewString()
	if log.SavedAt.IsZero() {
		log.SavedAt = time.Now()
	}

	if err := b.db.WithContext(ctx).Create(&log).Error; err != nil {
		return "", &remote.WriteError{Op: "create", Err: err}
	}
	return log.ID, nil
}

// RecentLogs lists the owner's logs, newest first
func (b *Backend) RecentLogs(ctx context.Context, ownerID string) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	err := b.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("saved_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// logCollection adapts the backend to the remote.LogCollection shape
type logCollection struct{ b *Backend }

func (c logCollection) Create(ctx context.Context, log models.TimeLog) (string, error) {
	return c.b.CreateLog(ctx, log)
}

func (c logCollection) Recent(ctx context.Context, ownerID string) ([]models.TimeLog, error) {
	return c.b.RecentLogs(ctx, ownerID)
}

// Logs returns the backend's time-log collection
func (b *Backend) Logs() remote.LogCollection {
	return logCollection{b: b}
}
