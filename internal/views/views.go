// Package views derives filtered task lists and aggregate statistics
// from the task store. Everything here is a pure function of (store
// contents, filter state); results are memoized on that pair and carry
// no state of their own.
package views

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/omarbek/taskflow/internal/models"
)

// FilterAll selects every value of a filter dimension
const FilterAll = "all"

// Filter is the view selection state. All four dimensions combine as a
// pure conjunction.
type Filter struct {
	Search   string // case-insensitive substring, empty matches all
	Category string // FilterAll or one category value
	Status   string // FilterAll or one status value
	Date     string // empty or an exact YYYY-MM-DD date
}

// DefaultFilter matches every task
func DefaultFilter() Filter {
	return Filter{Category: FilterAll, Status: FilterAll}
}

// Matches reports whether a task passes all four filter dimensions
func (f Filter) Matches(t models.Task) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(t.SearchText(), term) {
			return false
		}
	}
	if f.Category != "" && f.Category != FilterAll && string(t.Category) != f.Category {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && t.Status != f.Status {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	return true
}

// Stats are aggregates over the entire store, not the filtered subset
type Stats struct {
	TotalTasks     int
	CompletedTasks int
	PendingTasks   int
	TasksToday     int
	CompletedToday int
	HoursToday     float64 // rounded to one decimal place
}

// Source is the store surface the engine reads: the current task set
// plus a revision that changes with every applied snapshot.
type Source interface {
	Snapshot() ([]models.Task, uint64)
}

// Engine computes the filtered view and statistics on demand,
// recomputing only when the store revision or the filter changed.
type Engine struct {
	source Source
	now    func() time.Time

	mu         sync.Mutex
	filter     Filter
	memoValid  bool
	memoRev    uint64
	memoFilter Filter
	memoToday  string
	filtered   []models.Task
	stats      Stats
	projects   []string
}

// NewEngine creates a view engine over the given store
func NewEngine(source Source) *Engine {
	return &Engine{source: source, now: time.Now, filter: DefaultFilter()}
}

// SetFilter replaces the filter state
func (e *Engine) SetFilter(f Filter) {
	e.mu.Lock()
	e.filter = f
	e.mu.Unlock()
}

// Filter returns the current filter state
func (e *Engine) Filter() Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// Tasks returns the filtered, searched task subsequence in store order
func (e *Engine) Tasks() []models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recompute()
	return e.filtered
}

// Stats returns aggregates over the whole store
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recompute()
	return e.stats
}

// Projects returns the distinct non-empty project names across all
// tasks, used for input suggestions.
func (e *Engine) Projects() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recompute()
	return e.projects
}

// recompute refreshes the memoized results if the (contents, filter)
// pair changed. Callers hold e.mu.
func (e *Engine) recompute() {
	tasks, rev := e.source.Snapshot()
	today := models.DateOf(e.now())
	if e.memoValid && rev == e.memoRev && e.filter == e.memoFilter && today == e.memoToday {
		return
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if e.filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	var stats Stats
	var tracked time.Duration
	seen := make(map[string]struct{})
	projects := make([]string, 0)
	for _, t := range tasks {
		stats.TotalTasks++
		if t.Completed() {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
		}
		if t.Date == today {
			stats.TasksToday++
			if t.Completed() {
				stats.CompletedToday++
			}
			tracked += t.TrackedDuration()
		}
		if t.Project != "" {
			if _, ok := seen[t.Project]; !ok {
				seen[t.Project] = struct{}{}
				projects = append(projects, t.Project)
			}
		}
	}
	stats.HoursToday = math.Round(tracked.Hours()*10) / 10

	e.filtered = filtered
	e.stats = stats
	e.projects = projects
	e.memoValid = true
	e.memoRev = rev
	e.memoFilter = e.filter
	e.memoToday = today
}
