package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskList(t *testing.T) {
	t.Parallel()

	now := time.Now()
	owner := uuid.New()

	l, err := NewTaskList(owner, "Groceries", now)
	require.NoError(t, err)
	assert.Equal(t, owner, l.OwnerID)
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.False(t, l.ClassifiesTasks())

	_, err = NewTaskList(owner, "   ", now)
	assert.True(t, errors.Is(err, ErrListTitleRequired))
}

func TestTaskList_ValidateDisplayAttributes(t *testing.T) {
	t.Parallel()

	green := ColorGreen
	bogusColor := Color("TEAL")
	cart := Icon("SHOPPING_CART")
	bogusIcon := Icon("ROCKET")

	valid := &TaskList{Title: "x", Color: &green, Icon: &cart}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "GREEN", valid.ColorName())
	assert.Equal(t, "SHOPPING_CART", valid.IconName())

	assert.Equal(t, KindInputInvalid, KindOf((&TaskList{Title: "x", Color: &bogusColor}).Validate()))
	assert.Equal(t, KindInputInvalid, KindOf((&TaskList{Title: "x", Icon: &bogusIcon}).Validate()))
}

func TestListPrefs_Validate(t *testing.T) {
	t.Parallel()

	p := DefaultListPrefs(uuid.New(), uuid.New(), 3, time.Now())
	assert.NoError(t, p.Validate())

	p.SortType = "RANDOM"
	assert.Equal(t, KindInputInvalid, KindOf(p.Validate()))
}

func TestAction_Verb(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "added", ActionAddTask.Verb())
	assert.Equal(t, "joined", ActionJoinList.Verb())
	assert.Equal(t, "deleted all completed tasks", ActionClearCompletedTasks.Verb())
	assert.True(t, ActionPredictTaskCategory.Valid())
	assert.False(t, Action("DANCE").Valid())
	assert.Equal(t, "moved", ActionMoveTask.Verb())
}
