package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// ListService is the list behavior the handlers need.
type ListService interface {
	Create(ctx context.Context, userID uuid.UUID, in service.ListInput) (*domain.ListWithPrefs, error)
	Get(ctx context.Context, userID, listID uuid.UUID) (*domain.TaskList, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error)
	Update(ctx context.Context, userID, listID uuid.UUID, in service.ListInput) (*domain.TaskList, error)
	Delete(ctx context.Context, userID, listID uuid.UUID) error
	GetPrefs(ctx context.Context, userID, listID uuid.UUID) (*domain.ListPrefs, error)
	UpdatePrefs(ctx context.Context, userID, listID uuid.UUID, in service.PrefsInput) (*domain.ListPrefs, error)
	Reorder(ctx context.Context, userID, listID uuid.UUID, fromIndex, toIndex int, lastModified time.Time) error
	Members(ctx context.Context, userID, listID uuid.UUID) ([]domain.Profile, error)
}

// MembershipService is the invite and membership behavior the handlers need.
type MembershipService interface {
	RequestInvite(ctx context.Context, userID, listID uuid.UUID) (*domain.InviteToken, error)
	GetListByInvite(ctx context.Context, token string) (*domain.TaskList, error)
	AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*domain.ListWithPrefs, error)
	Leave(ctx context.Context, userID, listID uuid.UUID) error
}

// TaskService is the task behavior the handlers need.
type TaskService interface {
	List(ctx context.Context, userID, listID uuid.UUID) ([]domain.Task, error)
	Get(ctx context.Context, userID, listID, taskID uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, userID, listID uuid.UUID, in service.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, userID, listID, taskID uuid.UUID, in service.TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, listID, taskID uuid.UUID) error
	Move(ctx context.Context, userID, listID, taskID, newListID uuid.UUID, lastModified time.Time) (*domain.Task, error)
	Reorder(ctx context.Context, userID, listID, taskID uuid.UUID, fromIndex, toIndex int, lastModified time.Time) error
	ClearCompleted(ctx context.Context, userID, listID uuid.UUID) (int64, error)
}

// ProfileService is the profile behavior the handlers need.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// PushTokenService is the device registration behavior the handlers need.
type PushTokenService interface {
	Link(ctx context.Context, userID uuid.UUID, token string) error
	Invalidate(ctx context.Context, token string) error
}

// ListRequest is the body of list create and update.
type ListRequest struct {
	Title          string  `json:"title"           validate:"max=200"`
	Color          *string `json:"color"`
	Icon           *string `json:"icon"`
	ClassifierType *string `json:"classifier_type" validate:"omitempty,max=50"`
}

func (req ListRequest) toInput() service.ListInput {
	in := service.ListInput{Title: req.Title, ClassifierType: req.ClassifierType}
	if req.Color != nil {
		c := domain.Color(*req.Color)
		in.Color = &c
	}
	if req.Icon != nil {
		i := domain.Icon(*req.Icon)
		in.Icon = &i
	}
	return in
}

// PrefsRequest is the body of a prefs update.
type PrefsRequest struct {
	SortType         string `json:"sort_type"          validate:"required"`
	SortDirection    string `json:"sort_direction"     validate:"required"`
	ShowIndexNumbers bool   `json:"show_index_numbers"`
}

// ReorderListRequest moves one of the caller's lists.
type ReorderListRequest struct {
	ListID       uuid.UUID `json:"list_id"       validate:"required"`
	FromIndex    int       `json:"from_index"    validate:"gte=0"`
	ToIndex      int       `json:"to_index"      validate:"gte=0"`
	LastModified time.Time `json:"last_modified" validate:"required"`
}

// ReorderTaskRequest moves a task within its list.
type ReorderTaskRequest struct {
	FromIndex    int       `json:"from_index"    validate:"gte=0"`
	ToIndex      int       `json:"to_index"      validate:"gte=0"`
	LastModified time.Time `json:"last_modified" validate:"required"`
}

// TaskRequest is the body of task create and update. Update replaces every field.
type TaskRequest struct {
	Label        string     `json:"label"         validate:"max=1000"`
	Details      *string    `json:"details"`
	ReminderDate *time.Time `json:"reminder_date"`
	DueDate      *time.Time `json:"due_date"`
	IsCompleted  bool       `json:"is_completed"`
	IsStarred    bool       `json:"is_starred"`
	Category     *string    `json:"category"      validate:"omitempty,max=100"`
	LastModified time.Time  `json:"last_modified" validate:"required"`
}

func (req TaskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Label:        req.Label,
		Details:      req.Details,
		ReminderDate: req.ReminderDate,
		DueDate:      req.DueDate,
		IsCompleted:  req.IsCompleted,
		IsStarred:    req.IsStarred,
		Category:     req.Category,
		LastModified: req.LastModified,
	}
}

// MoveTaskRequest names the destination list of a move.
type MoveTaskRequest struct {
	ListID       uuid.UUID `json:"list_id"       validate:"required"`
	LastModified time.Time `json:"last_modified" validate:"required"`
}

// PushTokenRequest carries a device token.
type PushTokenRequest struct {
	Token string `json:"token" validate:"max=4096"`
}

// ClearCompletedResponse reports how many tasks were deleted.
type ClearCompletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// InviteResponse is an invite token the owner can share.
type InviteResponse struct {
	Token      string    `json:"token"`
	ListID     uuid.UUID `json:"list_id"`
	ExpiryTime time.Time `json:"expiry_time"`
}
