package models

import "time"

// MinLogDuration is the shortest session worth persisting
const MinLogDuration = time.Second

// TimeLog represents a completed time tracking session.
// Logs are written once and never mutated; the task title is a snapshot
// taken at save time, so a log stays meaningful after its task is deleted.
type TimeLog struct {
	ID         string    `json:"id" gorm:"primarykey"`
	OwnerID    string    `json:"owner_id" gorm:"index;not null"`
	TaskID     string    `json:"task_id"`
	TaskTitle  string    `json:"task_title"`
	DurationMS int64     `json:"duration"` // milliseconds, >= 1000
	SavedAt    time.Time `json:"saved_at"`
}

// Duration returns the session length as a time.Duration
func (l TimeLog) Duration() time.Duration {
	return time.Duration(l.DurationMS) * time.Millisecond
}
