package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTokenStore is a testify mock of store.TokenStore.
type MockTokenStore struct {
	mock.Mock
}

var _ store.TokenStore = (*MockTokenStore)(nil)

func (m *MockTokenStore) ExpirableTokens(ctx context.Context, kind domain.TokenKind) ([]domain.ExpirableToken, error) {
	args := m.Called(ctx, kind)
	if t, ok := args.Get(0).([]domain.ExpirableToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenStore) InvalidateToken(ctx context.Context, kind domain.TokenKind, token string) error {
	return m.Called(ctx, kind, token).Error(0)
}

func (m *MockTokenStore) CreateInvite(ctx context.Context, invite *domain.InviteToken) error {
	return m.Called(ctx, invite).Error(0)
}

func (m *MockTokenStore) GetInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	args := m.Called(ctx, token)
	if i, ok := args.Get(0).(*domain.InviteToken); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenStore) ConsumeInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	args := m.Called(ctx, token)
	if i, ok := args.Get(0).(*domain.InviteToken); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTxTokenStore returns the mock itself.
func (m *MockTokenStore) WithTxTokenStore(*sql.Tx) store.TokenStore {
	return m
}

// PushTokenStore is an in-memory store.PushTokenStore keyed by token value.
type PushTokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.PushToken

	// DeleteErr, when set, is returned by Delete.
	DeleteErr error
	// Deleted records every token passed to Delete.
	Deleted []string
}

var _ store.PushTokenStore = (*PushTokenStore)(nil)

// NewPushTokenStore creates a store holding tokens.
func NewPushTokenStore(tokens ...domain.PushToken) *PushTokenStore {
	s := &PushTokenStore{tokens: make(map[string]domain.PushToken)}
	for _, t := range tokens {
		s.tokens[t.Token] = t
	}
	return s
}

func (s *PushTokenStore) TokensForUsers(_ context.Context, userIDs []uuid.UUID) ([]domain.PushToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	var out []domain.PushToken
	for _, t := range s.tokens {
		if want[t.UserID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *PushTokenStore) Upsert(_ context.Context, token *domain.PushToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = *token
	return nil
}

func (s *PushTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, token)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.tokens, token)
	return nil
}

// Has reports whether the token is stored.
func (s *PushTokenStore) Has(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}

// ReminderStore is an in-memory store.ReminderStore. A reminder is due
// until it is marked fired.
type ReminderStore struct {
	mu        sync.Mutex
	reminders []domain.Reminder
	fired     map[uuid.UUID]time.Time
}

var _ store.ReminderStore = (*ReminderStore)(nil)

// NewReminderStore creates a store holding reminders.
func NewReminderStore(reminders ...domain.Reminder) *ReminderStore {
	return &ReminderStore{reminders: reminders, fired: make(map[uuid.UUID]time.Time)}
}

func (s *ReminderStore) DueReminders(_ context.Context, now time.Time) ([]domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []domain.Reminder
	for _, r := range s.reminders {
		firedAt, fired := s.fired[r.TaskID]
		if !r.ReminderDate.After(now) && (!fired || firedAt.Before(r.ReminderDate)) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (s *ReminderStore) MarkReminderFired(_ context.Context, taskID uuid.UUID, firedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fired[taskID] = firedAt
	return nil
}

// MockUserStore is a testify mock of store.UserStore.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
