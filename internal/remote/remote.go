// Package remote defines the boundary to the document store holding
// tasks, time logs and user accounts. Implementations push full-set
// snapshots: every notification carries the complete matching set, and
// consumers treat each one as an authoritative replacement.
package remote

import (
	"context"

	"github.com/omarbek/taskflow/internal/models"
)

// TaskSubscription is a live feed of task snapshots for one owner.
// Snapshots arrive ordered by createdAt descending, ties broken by id.
// After Cancel returns, no further snapshots or errors are delivered.
type TaskSubscription interface {
	// Snapshots yields the complete current task set on every change.
	// The channel is closed when the subscription ends.
	Snapshots() <-chan []models.Task

	// Errors yields stream-level faults. A fault does not close the
	// subscription; the backend may keep delivering snapshots.
	Errors() <-chan error

	// Cancel tears the subscription down. Idempotent.
	Cancel()
}

// TaskCollection is the remote task store for all owners
type TaskCollection interface {
	// Subscribe opens a snapshot stream of the owner's tasks. The
	// current set is delivered as the first notification.
	Subscribe(ctx context.Context, ownerID string) (TaskSubscription, error)

	// Create persists a new task and returns its assigned id
	Create(ctx context.Context, task models.Task) (string, error)

	// Update applies partial field changes to an existing task.
	// Returns ErrNotFound if the id no longer exists remotely.
	Update(ctx context.Context, ownerID, id string, fields map[string]any) error

	// Delete removes a task. Deleting a missing id is not an error.
	Delete(ctx context.Context, ownerID, id string) error
}

// LogCollection is the remote time-log store
type LogCollection interface {
	// Create persists a completed session log and returns its id
	Create(ctx context.Context, log models.TimeLog) (string, error)

	// Recent lists the owner's logs ordered by saved-at descending
	Recent(ctx context.Context, ownerID string) ([]models.TimeLog, error)
}

// UserCollection is the remote account store
type UserCollection interface {
	// Get returns a user document, or ErrNotFound
	Get(ctx context.Context, id string) (models.User, error)

	// Put creates or replaces a user document
	Put(ctx context.Context, user models.User) error

	// UpdateSettings applies profile and preference changes.
	// Returns ErrNotFound if the user document does not exist.
	UpdateSettings(ctx context.Context, id, displayName string, settings models.Settings) error

	// List returns every user document, for the team view
	List(ctx context.Context) ([]models.User, error)
}
