package models

import (
	"strings"
	"time"
)

// Task statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Priority is a task priority level with a display weight
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Weight returns the display weight used for sorting priority badges
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// Valid reports whether p is one of the known priority levels
func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// Category is one of the fixed work categories
type Category string

const (
	CategoryDevelopment   Category = "development"
	CategoryBugFixing     Category = "bug-fixing"
	CategoryCodeReview    Category = "code-review"
	CategoryDocumentation Category = "documentation"
	CategoryTesting       Category = "testing"
	CategoryMeeting       Category = "meeting"
	CategoryDesign        Category = "design"
	CategoryResearch      Category = "research"
	CategoryLearning      Category = "learning"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{
		CategoryDevelopment,
		CategoryBugFixing,
		CategoryCodeReview,
		CategoryDocumentation,
		CategoryTesting,
		CategoryMeeting,
		CategoryDesign,
		CategoryResearch,
		CategoryLearning,
		CategoryOther,
	}
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Attachment is a resolved uploaded file reference
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Task represents one logged unit of work.
// IDs are assigned by the remote collection on create.
type Task struct {
	ID          string      `json:"id" gorm:"primarykey"`
	OwnerID     string      `json:"owner_id" gorm:"index;not null"`
	OwnerEmail  string      `json:"owner_email"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Priority    Priority    `json:"priority"`
	Project     string      `json:"project"`
	Tags        []string    `json:"tags" gorm:"serializer:json"`
	Date        string      `json:"date"`       // calendar date, YYYY-MM-DD
	StartTime   string      `json:"start_time"` // clock time, HH:MM, optional
	EndTime     string      `json:"end_time"`   // clock time, HH:MM, optional
	Attachment  *Attachment `json:"attachment,omitempty" gorm:"serializer:json"`
	Status      string      `json:"status" gorm:"default:pending"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

// Completed reports whether the task is marked done
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// TrackedDuration returns the span between StartTime and EndTime.
// Tasks missing either bound contribute a zero duration.
func (t Task) TrackedDuration() time.Duration {
	if t.StartTime == "" || t.EndTime == "" {
		return 0
	}
	start, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", t.EndTime)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// SearchText returns the lowercased haystack the view engine matches
// search terms against: title, description, tags and project combined.
func (t Task) SearchText() string {
	parts := []string{t.Title, t.Description, strings.Join(t.Tags, " "), t.Project}
	return strings.ToLower(strings.Join(parts, " "))
}

// DateOf formats an instant as the calendar-date form used by Task.Date
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
