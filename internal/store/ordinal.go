package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain/ordinal"
)

// OrdinalStore is the persistence side of an ordered collection.
// The collection key is a list id for tasks and a user id for a member's
// list-of-lists.
type OrdinalStore interface {
	// LockCollection serializes writers of one collection until the
	// surrounding transaction ends. It must be called inside a transaction.
	LockCollection(ctx context.Context, collectionID uuid.UUID) error

	// MaxOrdinal returns the highest ordinal in the collection.
	// ok is false when the collection is empty.
	MaxOrdinal(ctx context.Context, collectionID uuid.UUID) (highest int, ok bool, err error)

	// ApplyOrdinalShift moves movedID to shift.To and shifts every other item
	// with an ordinal in [shift.Lower, shift.Upper] by shift.Sign, stamping
	// lastModified on each row it changes. It is a single statement.
	// Returns ErrNotFound if movedID is not in the collection.
	ApplyOrdinalShift(
		ctx context.Context,
		collectionID uuid.UUID,
		movedID uuid.UUID,
		shift ordinal.Shift,
		lastModified time.Time,
	) error
}

// NextOrdinal returns the ordinal for an item appended to the collection.
func NextOrdinal(ctx context.Context, s OrdinalStore, collectionID uuid.UUID) (int, error) {
	highest, ok, err := s.MaxOrdinal(ctx, collectionID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return highest + 1, nil
}
