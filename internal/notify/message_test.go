package notify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/notify"
	"github.com/stretchr/testify/assert"
)

func testList() *domain.TaskList {
	color := domain.ColorGreen
	return &domain.TaskList{ID: uuid.New(), OwnerID: uuid.New(), Title: "Groceries", Color: &color}
}

func TestActionPayload(t *testing.T) {
	list := testList()
	photo := "https://example.com/a.png"
	actor := &domain.Profile{ID: uuid.New(), DisplayName: "Sam", PhotoURL: &photo}
	task := &domain.Task{ID: uuid.New(), ListID: list.ID, Label: "Milk"}
	event := events.NewTaskEvent(task, actor.ID, domain.ActionCompleteTask)

	p := notify.ActionPayload(event, list, actor)

	assert.Equal(t, notify.MessageTypeAction, p.Data[notify.KeyMessageType])
	assert.Equal(t, task.ID.String(), p.Data[notify.KeyTaskID])
	assert.Equal(t, "Milk", p.Data[notify.KeyTaskLabel])
	assert.Equal(t, list.ID.String(), p.Data[notify.KeyListID])
	assert.Equal(t, "Groceries", p.Data[notify.KeyListTitle])
	assert.Equal(t, "GREEN", p.Data[notify.KeyListColor])
	assert.Equal(t, "COMPLETE_TASK", p.Data[notify.KeyAction])
	assert.Equal(t, actor.ID.String(), p.Data[notify.KeyActorID])
	assert.Equal(t, "Sam", p.Data[notify.KeyActorName])
	assert.Equal(t, photo, p.Data[notify.KeyActorPhoto])

	assert.Equal(t, "Groceries", p.Alert.Title)
	assert.Equal(t, "Sam completed", p.Alert.Body)
}

func TestActionPayload_ListScopedAndMissingActor(t *testing.T) {
	list := testList()
	event := events.NewActionEvent(list.ID, nil, uuid.New(), domain.ActionJoinList)

	p := notify.ActionPayload(event, list, nil)

	assert.Equal(t, domain.NoTaskID, p.Data[notify.KeyTaskID])
	assert.Equal(t, "", p.Data[notify.KeyActorName])
	assert.Equal(t, "", p.Data[notify.KeyActorPhoto])
	assert.Equal(t, "joined", p.Alert.Body)
}

func TestActionPayload_Prediction(t *testing.T) {
	list := testList()
	category := "Dairy"
	task := &domain.Task{ID: uuid.New(), ListID: list.ID, Label: "Milk", Category: &category}
	event := events.NewTaskEvent(task, list.OwnerID, domain.ActionPredictTaskCategory)

	p := notify.ActionPayload(event, list, nil)

	assert.Equal(t, "Milk → Dairy", p.Alert.Body)
	assert.Equal(t, "Dairy", p.Data[notify.KeyTaskCategory])
}

func TestReminderPayload(t *testing.T) {
	r := domain.Reminder{
		TaskID:       uuid.New(),
		TaskLabel:    "Pay rent",
		ReminderDate: time.Now(),
		ListID:       uuid.New(),
		ListTitle:    "Home",
		ListColor:    "BLUE",
		ListIcon:     "HOME_REPAIR_SERVICE",
	}

	p := notify.ReminderPayload(r)

	assert.Equal(t, notify.MessageTypeReminder, p.Data[notify.KeyMessageType])
	assert.Equal(t, r.TaskID.String(), p.Data[notify.KeyTaskID])
	assert.Equal(t, "Home", p.Data[notify.KeyListTitle])
	assert.Equal(t, notify.Alert{Title: "Pay rent", Body: "Home", Category: notify.ReminderCategory}, p.Alert)
}

func TestPayloadTo(t *testing.T) {
	p := notify.Payload{Data: map[string]string{"k": "v"}, Alert: notify.Alert{Title: "t"}}
	msgs := p.To([]domain.PushToken{{Token: "a"}, {Token: "b"}})

	assert.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Token)
	assert.Equal(t, "b", msgs[1].Token)
	assert.Equal(t, "v", msgs[1].Data["k"])
}
