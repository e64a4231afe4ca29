// Package store maintains the locally materialized task set for one
// signed-in user, kept live through a single remote subscription.
// Every notification replaces the whole set; readers always see either
// the old or the new complete slice, never a partial one.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarbek/taskflow/internal/attach"
	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// Store is the in-memory ordered task collection of the current user.
// Write operations go through the remote collection and take effect
// locally only when the next snapshot arrives.
type Store struct {
	ownerID    string
	ownerEmail string

	col     remote.TaskCollection
	creator *attach.Creator
	sub     remote.TaskSubscription
	log     zerolog.Logger

	mu       sync.RWMutex
	tasks    []models.Task
	rev      uint64
	degraded bool

	done chan struct{}
}

// Open subscribes to the owner's task collection and blocks until the
// initial snapshot is applied, so a freshly opened store already
// serves the current set.
func Open(ctx context.Context, col remote.TaskCollection, creator *attach.Creator, ownerID, ownerEmail string, log zerolog.Logger) (*Store, error) {
	sub, err := col.Subscribe(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s := &Store{
		ownerID:    ownerID,
		ownerEmail: ownerEmail,
		col:        col,
		creator:    creator,
		sub:        sub,
		log:        log,
		done:       make(chan struct{}),
	}

	// The subscription delivers the current set as its first
	// notification; apply it before handing the store out.
	select {
	case snap, ok := <-sub.Snapshots():
		if ok {
			s.apply(snap)
		}
	case err, ok := <-sub.Errors():
		if ok {
			s.degrade(err)
		}
	case <-ctx.Done():
		sub.Cancel()
		return nil, ctx.Err()
	}

	go s.run()
	return s, nil
}

// run consumes the subscription until it is cancelled
func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case snap, ok := <-s.sub.Snapshots():
			if !ok {
				return
			}
			s.apply(snap)
		case err, ok := <-s.sub.Errors():
			if !ok {
				return
			}
			s.degrade(err)
		}
	}
}

// apply replaces the whole local set with the snapshot contents
func (s *Store) apply(snap []models.Task) {
	tasks := make([]models.Task, len(snap))
	copy(tasks, snap)
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})

	s.mu.Lock()
	s.tasks = tasks
	s.rev++
	if s.degraded {
		s.log.Info().Str("owner", s.ownerID).Msg("task store recovered from degraded state")
		s.degraded = false
	}
	s.mu.Unlock()
}

// degrade flags a stream fault. The last good snapshot stays in place.
func (s *Store) degrade(err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	s.log.Warn().Err(err).Str("owner", s.ownerID).Msg("task store degraded, serving last known snapshot")
}

// CurrentTasks returns the current ordered task set. The slice is
// replaced wholesale on every snapshot and must not be mutated.
func (s *Store) CurrentTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

// Snapshot returns the current task set together with its revision,
// which increments on every applied notification.
func (s *Store) Snapshot() ([]models.Task, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks, s.rev
}

// Revision returns the current snapshot revision
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Degraded reports whether the subscription has faulted since the
// last good snapshot.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// OwnerID returns the id of the user the store is bound to
func (s *Store) OwnerID() string {
	return s.ownerID
}

// find returns the task with the given id from the current snapshot
func (s *Store) find(id string) (models.Task, bool) {
	for _, t := range s.CurrentTasks() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Close cancels the subscription and waits for the apply loop to stop.
// No snapshot is applied after Close returns.
func (s *Store) Close() {
	s.sub.Cancel()
	<-s.done
}

// Add creates a task through the remote collection, uploading the
// optional file first. Local state is untouched until the resulting
// snapshot arrives.
func (s *Store) Add(ctx context.Context, task models.Task, file *attach.File) (string, error) {
	if task.Title == "" {
		return "", fmt.Errorf("task title must not be empty")
	}
	if task.Category != "" && !task.Category.Valid() {
		return "", fmt.Errorf("unknown category %q", task.Category)
	}
	if task.Priority != "" && !task.Priority.Valid() {
		return "", fmt.Errorf("unknown priority %q", task.Priority)
	}

	task.OwnerID = s.ownerID
	task.OwnerEmail = s.ownerEmail
	task.Status = models.StatusPending
	task.CompletedAt = nil
	if task.Date == "" {
		task.Date = models.DateOf(time.Now())
	}

	return s.creator.Create(ctx, task, file)
}

// ToggleStatus flips a task between pending and completed, setting or
// clearing its completion instant to match.
func (s *Store) ToggleStatus(ctx context.Context, id string) error {
	task, ok := s.find(id)
	if !ok {
		return remote.ErrNotFound
	}

	fields := map[string]any{
		"status":       models.StatusCompleted,
		"completed_at": time.Now(),
	}
	if task.Completed() {
		fields["status"] = models.StatusPending
		fields["completed_at"] = nil
	}

	return s.col.Update(ctx, s.ownerID, id, fields)
}

// Remove deletes a task. The caller is expected to have confirmed the
// action with the user; deletion is irreversible.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.col.Delete(ctx, s.ownerID, id)
}
