package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ListStore persists lists and their per-member prefs. A prefs row exists
// for the owner and for every member, so it is also the membership record.
//
// Its OrdinalStore methods operate on a member's list-of-lists: the
// collection key is a user id and the moved id is a list id.
type ListStore interface {
	OrdinalStore

	// Create inserts a list. It does not create the owner's prefs row.
	Create(ctx context.Context, list *domain.TaskList) error

	// GetByID returns ErrListNotFound if the list does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskList, error)

	// ListForUser returns every list the user owns or belongs to, paired with
	// the user's prefs and ordered by the prefs ordinal.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error)

	// Update saves title, display attributes, classifier type and lastModified.
	Update(ctx context.Context, list *domain.TaskList) error

	// Delete removes the list together with its tasks, prefs and invites.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsOwner reports whether userID owns listID.
	IsOwner(ctx context.Context, listID, userID uuid.UUID) (bool, error)

	// HasAccess reports whether userID owns or is a member of listID.
	HasAccess(ctx context.Context, listID, userID uuid.UUID) (bool, error)

	// AddMember inserts a prefs row. Returns ErrAlreadyMember when one exists.
	AddMember(ctx context.Context, prefs *domain.ListPrefs) error

	// RemoveMember deletes the user's prefs row.
	RemoveMember(ctx context.Context, listID, userID uuid.UUID) error

	// GetPrefs returns ErrPrefsNotFound if the user has no prefs for the list.
	GetPrefs(ctx context.Context, listID, userID uuid.UUID) (*domain.ListPrefs, error)

	// UpdatePrefs saves sort settings. The ordinal is only changed by reordering.
	UpdatePrefs(ctx context.Context, prefs *domain.ListPrefs) error

	// MemberIDs returns every user with access to the list, owner included.
	MemberIDs(ctx context.Context, listID uuid.UUID) ([]uuid.UUID, error)

	// Members returns the profiles of every user with access to the list.
	Members(ctx context.Context, listID uuid.UUID) ([]domain.Profile, error)

	// WithTxListStore returns a store that runs its queries on tx.
	WithTxListStore(tx *sql.Tx) ListStore
}
