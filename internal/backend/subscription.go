package backend

import (
	"sync"

	"github.com/omarbek/taskflow/internal/models"
)

// taskSub is one live snapshot stream. Channels are buffered with
// latest-wins delivery: a slow consumer only ever misses intermediate
// snapshots, never the newest one.
type taskSub struct {
	ownerID string
	snaps   chan []models.Task
	errs    chan error

	cancel func()
	once   sync.Once
}

func (s *taskSub) Snapshots() <-chan []models.Task { return s.snaps }

func (s *taskSub) Errors() <-chan error { return s.errs }

func (s *taskSub) Cancel() {
	s.once.Do(s.cancel)
}

// registry tracks live subscribers per owner and fans snapshots out
type registry struct {
	mu   sync.Mutex
	subs map[*taskSub]struct{}
}

func newRegistry() *registry {
	return &registry{subs: make(map[*taskSub]struct{})}
}

func (r *registry) add(ownerID string) *taskSub {
	sub := &taskSub{
		ownerID: ownerID,
		snaps:   make(chan []models.Task, 1),
		errs:    make(chan error, 1),
	}
	sub.cancel = func() { r.remove(sub) }

	r.mu.Lock()
	r.subs[sub] = struct{}{}
	r.mu.Unlock()
	return sub
}

func (r *registry) remove(sub *taskSub) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub]; !ok {
		return
	}
	delete(r.subs, sub)
	close(sub.snaps)
	close(sub.errs)
}

// publish delivers a snapshot to every subscriber of the owner,
// replacing any undelivered previous snapshot.
func (r *registry) publish(ownerID string, tasks []models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subs {
		if sub.ownerID != ownerID {
			continue
		}
		select {
		case sub.snaps <- tasks:
		default:
			select {
			case <-sub.snaps:
			default:
			}
			sub.snaps <- tasks
		}
	}
}

// publishError reports a stream-level fault without ending the streams
func (r *registry) publishError(ownerID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subs {
		if sub.ownerID != ownerID {
			continue
		}
		select {
		case sub.errs <- err:
		default:
		}
	}
}

func (r *registry) cancelAll() {
	r.mu.Lock()
	subs := make([]*taskSub, 0, len(r.subs))
	for sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}
