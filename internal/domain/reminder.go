package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a due, unfired task reminder joined with what is needed to
// notify about it.
type Reminder struct {
	TaskID       uuid.UUID `json:"task_id"`
	TaskLabel    string    `json:"task_label"`
	ReminderDate time.Time `json:"reminder_date"`
	ListID       uuid.UUID `json:"list_id"`
	ListTitle    string    `json:"list_title"`
	ListColor    string    `json:"list_color"`
	ListIcon     string    `json:"list_icon"`
	// OwnerID is the user who receives the reminder.
	OwnerID uuid.UUID `json:"owner_id"`
}
