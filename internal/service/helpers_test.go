package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// fixture wires every service to shared mocks and a fixed clock.
type fixture struct {
	lists   *mocks.MockListStore
	tasks   *mocks.MockTaskStore
	tokens  *mocks.MockTokenStore
	tx      *mocks.Transactor
	emitter *mocks.EventEmitter

	gate     *MembershipGate
	listSvc  *ListService
	taskSvc  *TaskService
	owner    uuid.UUID
	member   uuid.UUID
	stranger uuid.UUID
	listID   uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		lists:    new(mocks.MockListStore),
		tasks:    new(mocks.MockTaskStore),
		tokens:   new(mocks.MockTokenStore),
		tx:       &mocks.Transactor{},
		emitter:  &mocks.EventEmitter{},
		owner:    uuid.New(),
		member:   uuid.New(),
		stranger: uuid.New(),
		listID:   uuid.New(),
	}
	seq := NewOrdinalSequencer(discardLogger)
	f.gate = NewMembershipGate(f.lists, f.tokens, f.tx, seq, f.emitter, time.Hour, discardLogger)
	f.gate.now = clock
	f.listSvc = NewListService(f.lists, f.tx, f.gate, seq, discardLogger)
	f.listSvc.now = clock
	f.taskSvc = NewTaskService(f.tasks, f.tx, f.gate, seq, f.emitter, discardLogger)
	f.taskSvc.now = clock

	for _, id := range []uuid.UUID{f.owner, f.member} {
		f.lists.On("HasAccess", mock.Anything, f.listID, id).Return(true, nil).Maybe()
	}
	f.lists.On("HasAccess", mock.Anything, f.listID, f.stranger).Return(false, nil).Maybe()
	f.lists.On("IsOwner", mock.Anything, f.listID, f.owner).Return(true, nil).Maybe()
	f.lists.On("IsOwner", mock.Anything, f.listID, f.member).Return(false, nil).Maybe()
	f.lists.On("IsOwner", mock.Anything, f.listID, f.stranger).Return(false, nil).Maybe()
	return f
}
