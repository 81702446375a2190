package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ListInput carries the client-controlled fields of a list.
type ListInput struct {
	Title          string
	Color          *domain.Color
	Icon           *domain.Icon
	ClassifierType *string
}

// PrefsInput carries a member's display preferences for a list.
type PrefsInput struct {
	SortType         domain.SortType
	SortDirection    domain.SortDirection
	ShowIndexNumbers bool
}

// ListService manages lists and each member's view of them.
type ListService struct {
	lists     store.ListStore
	tx        store.Transactor
	gate      *MembershipGate
	sequencer *OrdinalSequencer
	now       func() time.Time
	logger    *slog.Logger
}

// NewListService creates a ListService.
func NewListService(
	lists store.ListStore,
	tx store.Transactor,
	gate *MembershipGate,
	sequencer *OrdinalSequencer,
	logger *slog.Logger,
) *ListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListService{
		lists:     lists,
		tx:        tx,
		gate:      gate,
		sequencer: sequencer,
		now:       time.Now,
		logger:    logger.With("component", "list_service"),
	}
}

// Create makes a list owned by userID and appends it to the owner's
// list-of-lists.
func (s *ListService) Create(ctx context.Context, userID uuid.UUID, in ListInput) (*domain.ListWithPrefs, error) {
	now := s.now()
	list, err := domain.NewTaskList(userID, in.Title, now)
	if err != nil {
		return nil, err
	}
	list.Color, list.Icon, list.ClassifierType = in.Color, in.Icon, in.ClassifierType
	if err := list.Validate(); err != nil {
		return nil, err
	}

	var prefs *domain.ListPrefs
	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.lists.WithTxListStore(tx)
		if err := lists.Create(ctx, list); err != nil {
			return NewServiceError("create_list", "failed to insert list", err)
		}
		next, err := s.sequencer.Append(ctx, lists, userID)
		if err != nil {
			return NewServiceError("create_list", "failed to position list", err)
		}
		prefs = domain.DefaultListPrefs(list.ID, userID, next, now)
		if err := lists.AddMember(ctx, prefs); err != nil {
			return NewServiceError("create_list", "failed to insert owner prefs", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("created list",
		slog.String("list_id", list.ID.String()),
		slog.String("user_id", userID.String()))
	return &domain.ListWithPrefs{List: *list, Prefs: *prefs}, nil
}

// Get returns a list the user can access.
func (s *ListService) Get(ctx context.Context, userID, listID uuid.UUID) (*domain.TaskList, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, NewServiceError("get_list", "failed to load list", err)
	}
	return list, nil
}

// ListForUser returns every list the user owns or belongs to, in the
// user's own order.
func (s *ListService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error) {
	lists, err := s.lists.ListForUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_lists", "failed to load lists", err)
	}
	return lists, nil
}

// Update replaces the list's title and display attributes.
func (s *ListService) Update(ctx context.Context, userID, listID uuid.UUID, in ListInput) (*domain.TaskList, error) {
	list, err := s.Get(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	list.Title = in.Title
	list.Color, list.Icon, list.ClassifierType = in.Color, in.Icon, in.ClassifierType
	list.LastModified = s.now().UTC()
	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.lists.Update(ctx, list); err != nil {
		return nil, NewServiceError("update_list", "failed to update list", err)
	}
	return list, nil
}

// Delete removes the list with its tasks, memberships and invites. Only the
// owner may delete.
func (s *ListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	if err := s.gate.EnsureOwnership(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, listID); err != nil {
		return NewServiceError("delete_list", "failed to delete list", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("deleted list", slog.String("list_id", listID.String()))
	return nil
}

// GetPrefs returns the user's preferences for a list.
func (s *ListService) GetPrefs(ctx context.Context, userID, listID uuid.UUID) (*domain.ListPrefs, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	prefs, err := s.lists.GetPrefs(ctx, listID, userID)
	if err != nil {
		return nil, NewServiceError("get_prefs", "failed to load prefs", err)
	}
	return prefs, nil
}

// UpdatePrefs replaces the user's sort settings for a list. The list's
// position is changed only through Reorder.
func (s *ListService) UpdatePrefs(ctx context.Context, userID, listID uuid.UUID, in PrefsInput) (*domain.ListPrefs, error) {
	prefs, err := s.GetPrefs(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	prefs.SortType = in.SortType
	prefs.SortDirection = in.SortDirection
	prefs.ShowIndexNumbers = in.ShowIndexNumbers
	prefs.LastModified = s.now().UTC()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if err := s.lists.UpdatePrefs(ctx, prefs); err != nil {
		return nil, NewServiceError("update_prefs", "failed to update prefs", err)
	}
	return prefs, nil
}

// Reorder moves listID from fromIndex to toIndex in the user's list-of-lists.
func (s *ListService) Reorder(
	ctx context.Context,
	userID, listID uuid.UUID,
	fromIndex, toIndex int,
	lastModified time.Time,
) error {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return err
	}

	stamped := stamp(lastModified, s.now)
	return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := s.sequencer.Move(ctx, s.lists.WithTxListStore(tx), userID, listID, fromIndex, toIndex, stamped)
		return NewServiceError("reorder_lists", "failed to reorder lists", err)
	})
}

// Members returns the profiles of the list's owner and members.
func (s *ListService) Members(ctx context.Context, userID, listID uuid.UUID) ([]domain.Profile, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	members, err := s.lists.Members(ctx, listID)
	if err != nil {
		return nil, NewServiceError("list_members", "failed to load members", err)
	}
	return members, nil
}
