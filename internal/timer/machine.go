// Package timer runs the time-tracking session machine: an
// instant-anchored stopwatch that persists completed sessions as time
// logs. The periodic tick is advisory, for display only; the duration
// written at save time is always computed from instants.
package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/remote"
)

// ErrRunning rejects operations that require the machine to be paused
var ErrRunning = errors.New("timer is running, pause it first")

// State is the machine's phase
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return "idle"
}

// TitleFunc resolves a task id to its current title for the log
// snapshot. It returns false when the task is gone.
type TitleFunc func(taskID string) (string, bool)

// Machine is one user's time-tracking session. A session runs from
// idle through running/paused to a save or reset. The machine reads
// task titles but never mutates the task store.
type Machine struct {
	logs    remote.LogCollection
	ownerID string
	title   TitleFunc

	mu          sync.Mutex
	state       State
	selected    string
	startedAt   time.Time     // anchor while running
	accumulated time.Duration // frozen elapsed while paused or idle

	clock    func() time.Time
	interval time.Duration
	onTick   func(time.Duration)
	stopTick chan struct{}
}

// NewMachine creates an idle session machine for the given owner
func NewMachine(logs remote.LogCollection, ownerID string, title TitleFunc) *Machine {
	return &Machine{
		logs:     logs,
		ownerID:  ownerID,
		title:    title,
		clock:    time.Now,
		interval: time.Second,
	}
}

// SetOnTick registers the advisory display callback, invoked about
// once per second with the current elapsed value while running.
func (m *Machine) SetOnTick(fn func(time.Duration)) {
	m.mu.Lock()
	m.onTick = fn
	m.mu.Unlock()
}

// State returns the machine's current phase
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SelectedTask returns the id of the task sessions are tracked against
func (m *Machine) SelectedTask() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Select picks the task to track time against. Rejected while running.
func (m *Machine) Select(taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateRunning {
		return ErrRunning
	}
	m.selected = taskID
	return nil
}

// Elapsed returns the session's current length. While running it is
// recomputed from the anchor instant on every call.
func (m *Machine) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsedLocked()
}

func (m *Machine) elapsedLocked() time.Duration {
	if m.state == StateRunning {
		return m.clock().Sub(m.startedAt)
	}
	return m.accumulated
}

// Start begins or resumes the session. Resuming continues from the
// accumulated elapsed value; the anchor is moved back accordingly.
// Fails with ErrNoTaskSelected when no task is selected, leaving the
// state untouched.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == "" {
		return remote.ErrNoTaskSelected
	}
	if m.state == StateRunning {
		return nil
	}

	m.startedAt = m.clock().Add(-m.accumulated)
	m.state = StateRunning
	m.startTickLocked()
	return nil
}

// Pause freezes the elapsed value and stops the advisory tick
func (m *Machine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return
	}
	m.accumulated = m.clock().Sub(m.startedAt)
	m.state = StatePaused
	m.stopTickLocked()
}

// Reset returns the machine to idle with zero elapsed. The selected
// task is kept.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTickLocked()
	m.accumulated = 0
	m.state = StateIdle
}

// Save persists the paused session as a time log and resets to idle.
// The machine must be paused: saving while running is rejected rather
// than implicitly pausing. Sessions under a second fail with
// ErrSessionTooShort and leave the elapsed value untouched.
func (m *Machine) Save(ctx context.Context) (models.TimeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRunning {
		return models.TimeLog{}, ErrRunning
	}
	if m.selected == "" {
		return models.TimeLog{}, remote.ErrNoTaskSelected
	}
	if m.accumulated < models.MinLogDuration {
		return models.TimeLog{}, remote.ErrSessionTooShort
	}

	title, ok := m.title(m.selected)
	if !ok {
		title = "Unknown Task"
	}

	log := models.TimeLog{
		OwnerID:    m.ownerID,
		TaskID:     m.selected,
		TaskTitle:  title,
		DurationMS: m.accumulated.Milliseconds(),
		SavedAt:    m.clock(),
	}

	id, err := m.logs.Create(ctx, log)
	if err != nil {
		// State is left as-is so the session can be retried
		return models.TimeLog{}, err
	}
	log.ID = id

	m.accumulated = 0
	m.state = StateIdle
	return log, nil
}

// Close stops the advisory tick. No tick callback fires afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTickLocked()
}

func (m *Machine) startTickLocked() {
	if m.onTick == nil {
		return
	}
	stop := make(chan struct{})
	m.stopTick = stop

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.mu.Lock()
				fn, elapsed := m.onTick, m.elapsedLocked()
				running := m.state == StateRunning
				m.mu.Unlock()
				if running && fn != nil {
					fn(elapsed)
				}
			case <-stop:
				return
			}
		}
	}()
}

func (m *Machine) stopTickLocked() {
	if m.stopTick != nil {
		close(m.stopTick)
		m.stopTick = nil
	}
}
