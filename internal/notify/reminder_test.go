package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_NotifiesOwnerOnce(t *testing.T) {
	owner := uuid.New()
	now := time.Now().UTC()
	reminders := mocks.NewReminderStore(
		domain.Reminder{TaskID: uuid.New(), TaskLabel: "Pay rent", ReminderDate: now.Add(-time.Minute),
			ListID: uuid.New(), ListTitle: "Home", OwnerID: owner},
		domain.Reminder{TaskID: uuid.New(), TaskLabel: "Later", ReminderDate: now.Add(time.Hour),
			ListID: uuid.New(), ListTitle: "Home", OwnerID: owner},
	)
	tokens := mocks.NewPushTokenStore(domain.PushToken{UserID: owner, Token: "owner-device-token-1"})
	sender := &fakeSender{}
	d := notify.NewDispatcher(sender, tokens, 0, testLogger())
	sweeper := notify.NewReminderSweeper(reminders, tokens, d, testLogger())

	require.NoError(t, sweeper.Sweep(context.Background()))
	require.Len(t, sender.batches, 1)
	require.Len(t, sender.batches[0], 1)
	msg := sender.batches[0][0]
	assert.Equal(t, "owner-device-token-1", msg.Token)
	assert.Equal(t, "Pay rent", msg.Alert.Title)
	assert.Equal(t, notify.ReminderCategory, msg.Alert.Category)

	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Len(t, sender.batches, 1, "fired reminder must not be sent again")
}

func TestSweep_NothingDue(t *testing.T) {
	sender := &fakeSender{}
	tokens := mocks.NewPushTokenStore()
	d := notify.NewDispatcher(sender, tokens, 0, testLogger())
	sweeper := notify.NewReminderSweeper(mocks.NewReminderStore(), tokens, d, testLogger())

	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Empty(t, sender.batches)
}

func TestSweep_FailedSendIsNotRepeated(t *testing.T) {
	owner := uuid.New()
	reminders := mocks.NewReminderStore(domain.Reminder{
		TaskID: uuid.New(), TaskLabel: "x", ReminderDate: time.Now().Add(-time.Minute), OwnerID: owner,
	})
	tokens := mocks.NewPushTokenStore(domain.PushToken{UserID: owner, Token: "owner-device-token-1"})
	sender := &fakeSender{failOn: 1}
	d := notify.NewDispatcher(sender, tokens, 0, testLogger())
	sweeper := notify.NewReminderSweeper(reminders, tokens, d, testLogger())

	require.Error(t, sweeper.Sweep(context.Background()))
	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Len(t, sender.batches, 1)
}
