package notify

import (
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
)

// Data payload keys. Clients depend on these names.
const (
	KeyMessageType  = "DATA_MESSAGE_TYPE"
	KeyTaskID       = "DATA_TASK_ID"
	KeyTaskLabel    = "DATA_TASK_LABEL"
	KeyTaskCategory = "DATA_TASK_CATEGORY"
	KeyListID       = "DATA_LIST_ID"
	KeyListTitle    = "DATA_LIST_TITLE"
	KeyListIcon     = "DATA_LIST_ICON"
	KeyListColor    = "DATA_LIST_COLOR"
	KeyAction       = "DATA_ACTION"
	KeyActorID      = "DATA_ACTOR_ID"
	KeyActorName    = "DATA_ACTOR_NAME"
	KeyActorPhoto   = "DATA_ACTOR_PHOTO"
)

// Values of KeyMessageType.
const (
	MessageTypeAction   = "MESSAGE_TYPE_ACTION"
	MessageTypeReminder = "MESSAGE_TYPE_REMINDER"
)

// ReminderCategory is the APNs category of reminder alerts.
const ReminderCategory = "reminder"

// Alert is the user-visible part of a message on APNs devices.
type Alert struct {
	Title    string
	Body     string
	Category string
}

// Message is one push addressed to one device token.
type Message struct {
	Token string
	Data  map[string]string
	Alert Alert
}

// Payload is the device-independent content of a notification.
type Payload struct {
	Data  map[string]string
	Alert Alert
}

// To addresses a copy of the payload to each token.
func (p Payload) To(tokens []domain.PushToken) []Message {
	msgs := make([]Message, 0, len(tokens))
	for _, t := range tokens {
		msgs = append(msgs, Message{Token: t.Token, Data: p.Data, Alert: p.Alert})
	}
	return msgs
}

// ActionPayload describes event on list. actor may be nil when the actor's
// profile is gone.
func ActionPayload(event *events.ActionEvent, list *domain.TaskList, actor *domain.Profile) Payload {
	actorName, actorPhoto := "", ""
	if actor != nil {
		actorName = actor.DisplayName
		actorPhoto = actor.PhotoURLOrEmpty()
	}

	body := strings.TrimSpace(actorName + " " + event.Action.Verb())
	if event.Action == domain.ActionPredictTaskCategory {
		body = event.TaskLabel + " → " + event.TaskCategory
	}

	return Payload{
		Data: map[string]string{
			KeyMessageType:  MessageTypeAction,
			KeyTaskID:       event.TaskID,
			KeyTaskLabel:    event.TaskLabel,
			KeyTaskCategory: event.TaskCategory,
			KeyListID:       list.ID.String(),
			KeyListTitle:    list.Title,
			KeyListIcon:     list.IconName(),
			KeyListColor:    list.ColorName(),
			KeyAction:       string(event.Action),
			KeyActorID:      event.ActorID.String(),
			KeyActorName:    actorName,
			KeyActorPhoto:   actorPhoto,
		},
		Alert: Alert{Title: list.Title, Body: body},
	}
}

// ReminderPayload describes a due reminder.
func ReminderPayload(r domain.Reminder) Payload {
	return Payload{
		Data: map[string]string{
			KeyMessageType: MessageTypeReminder,
			KeyTaskID:      r.TaskID.String(),
			KeyTaskLabel:   r.TaskLabel,
			KeyListID:      r.ListID.String(),
			KeyListTitle:   r.ListTitle,
			KeyListColor:   r.ListColor,
			KeyListIcon:    r.ListIcon,
		},
		Alert: Alert{Title: r.TaskLabel, Body: r.ListTitle, Category: ReminderCategory},
	}
}
