package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is an entry in a list. Ordinal is its position within the list.
type Task struct {
	ID           uuid.UUID  `json:"id"`
	ListID       uuid.UUID  `json:"list_id"`
	Label        string     `json:"label"`
	IsCompleted  bool       `json:"is_completed"`
	IsStarred    bool       `json:"is_starred"`
	Details      *string    `json:"details,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	DateCreated  time.Time  `json:"date_created"`
	LastModified time.Time  `json:"last_modified"`
	Ordinal      int        `json:"ordinal"`
	Category     *string    `json:"category,omitempty"`
}

// Validate checks the fields a client controls.
func (t *Task) Validate() error {
	if t.ListID == uuid.Nil {
		return Wrap(KindInputInvalid, "task list id cannot be empty", nil)
	}
	if strings.TrimSpace(t.Label) == "" {
		return Wrap(KindInputInvalid, "task label cannot be empty", nil)
	}
	if t.Ordinal < 0 {
		return Wrap(KindInputInvalid, "ordinal cannot be negative", nil)
	}
	return nil
}

// NeedsCategory reports whether a category should be predicted for the task.
func (t *Task) NeedsCategory() bool {
	return t.Category == nil || *t.Category == ""
}

// CategoryName returns the category or "" when unset.
func (t *Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}
