// Package session ties one signed-in user's resources together: the
// live task store, the derived view engine and at most one timer
// machine. A session is created on sign-in and must be closed on
// sign-out; closing cancels the subscription and stops the tick, after
// which no callbacks fire.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/omarbek/taskflow/internal/attach"
	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
	"github.com/omarbek/taskflow/internal/store"
	"github.com/omarbek/taskflow/internal/timer"
	"github.com/omarbek/taskflow/internal/views"
)

// Backends are the remote boundaries a session consumes
type Backends struct {
	Tasks   remote.TaskCollection
	Logs    remote.LogCollection
	Storage attach.Storage
}

// Session owns the per-user resources for one sign-in
type Session struct {
	user   models.User
	cancel context.CancelFunc
	logs   remote.LogCollection
	log    zerolog.Logger

	Store *store.Store
	Views *views.Engine
	Timer *timer.Machine
}

// Open starts a session for an authenticated user. The task store
// subscription begins immediately.
func Open(ctx context.Context, user models.User, be Backends, log zerolog.Logger) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)

	creator := attach.NewCreator(be.Storage, be.Tasks)
	st, err := store.Open(ctx, be.Tasks, creator, user.ID, user.Email, log)
	if err != nil {
		cancel()
		return nil, err
	}

	title := func(taskID string) (string, bool) {
		for _, t := range st.CurrentTasks() {
			if t.ID == taskID {
				return t.Title, true
			}
		}
		return "", false
	}

	s := &Session{
		user:   user,
		cancel: cancel,
		logs:   be.Logs,
		log:    log,
		Store:  st,
		Views:  views.NewEngine(st),
		Timer:  timer.NewMachine(be.Logs, user.ID, title),
	}

	log.Debug().Str("user", user.ID).Msg("session opened")
	return s, nil
}

// User returns the signed-in user
func (s *Session) User() models.User {
	return s.user
}

// RecentLogs lists the user's saved time logs, newest first
func (s *Session) RecentLogs(ctx context.Context) ([]models.TimeLog, error) {
	return s.logs.Recent(ctx, s.user.ID)
}

// Close tears the session down: the timer tick stops and the task
// subscription is cancelled. Safe to call once per session.
func (s *Session) Close() {
	s.Timer.Close()
	s.Store.Close()
	s.cancel()
	s.log.Debug().Str("user", s.user.ID).Msg("session closed")
}
