package backend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// Subscribe opens a snapshot stream of the owner's tasks. The current
// set is delivered immediately, then again after every write touching
// the owner's collection. The stream ends when sub.Cancel is called or
// the context is done.
func (b *Backend) Subscribe(ctx context.Context, ownerID string) (remote.TaskSubscription, error) {
	tasks, err := b.queryTasks(ownerID)
	if err != nil {
		return nil, &remote.SubscriptionError{Err: err}
	}

	sub := b.subs.add(ownerID)
	sub.snaps <- tasks
	context.AfterFunc(ctx, sub.Cancel)

	b.log.Debug().Str("owner", ownerID).Int("tasks", len(tasks)).Msg("task subscription opened")
	return sub, nil
}

// Create persists a new task and notifies the owner's subscribers
func (b *Backend) Create(ctx context.Context, task models.Task) (string, error) {
	task.ID = uuid.NewString()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	if err := b.db.WithContext(ctx).Create(&task).Error; err != nil {
		return "", &remote.WriteError{Op: "create", Err: err}
	}

	b.notify(task.OwnerID)
	return task.ID, nil
}

// Update applies partial field changes to an existing task
func (b *Backend) Update(ctx context.Context, ownerID, id string, fields map[string]any) error {
	res := b.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return &remote.WriteError{Op: "update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return remote.ErrNotFound
	}

	b.notify(ownerID)
	return nil
}

// Delete removes a task. Deleting a missing id is not an error.
func (b *Backend) Delete(ctx context.Context, ownerID, id string) error {
	res := b.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Task{})
	if res.Error != nil {
		return &remote.WriteError{Op: "delete", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		b.notify(ownerID)
	}
	return nil
}

// queryTasks loads the owner's full set in snapshot order
func (b *Backend) queryTasks(ownerID string) ([]models.Task, error) {
	var tasks []models.Task
	err := b.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// notify re-queries the owner's set and fans it out to subscribers.
// A query failure is reported on the error channels instead of
// silently dropping the notification.
func (b *Backend) notify(ownerID string) {
	tasks, err := b.queryTasks(ownerID)
	if err != nil {
		b.log.Warn().Err(err).Str("owner", ownerID).Msg("snapshot query failed")
		b.subs.publishError(ownerID, &remote.SubscriptionError{Err: err})
		return
	}
	b.subs.publish(ownerID, tasks)
}

var _ remote.TaskCollection = (*Backend)(nil)
