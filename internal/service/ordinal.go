package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/domain/ordinal"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// OrdinalSequencer moves one item of an ordered collection. It must be
// called with a store bound to an open transaction: the collection lock it
// takes is held until that transaction ends.
type OrdinalSequencer struct {
	logger *slog.Logger
}

// NewOrdinalSequencer creates a sequencer.
func NewOrdinalSequencer(logger *slog.Logger) *OrdinalSequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrdinalSequencer{logger: logger.With("component", "ordinal_sequencer")}
}

// Move places movedID at position toIndex of the collection, shifting every
// item between fromIndex and toIndex by one. Moving an item onto its own
// position changes nothing. The returned Shift describes what was applied.
func (s *OrdinalSequencer) Move(
	ctx context.Context,
	st store.OrdinalStore,
	collectionID, movedID uuid.UUID,
	fromIndex, toIndex int,
	lastModified time.Time,
) (ordinal.Shift, error) {
	shift, err := ordinal.NewShift(fromIndex, toIndex)
	if err != nil {
		return ordinal.Shift{}, domain.Wrap(domain.KindInvalidReorder, "invalid reorder", err)
	}
	if shift.IsNoop() {
		return shift, nil
	}

	if err := st.LockCollection(ctx, collectionID); err != nil {
		return ordinal.Shift{}, fmt.Errorf("failed to lock collection: %w", err)
	}
	if err := st.ApplyOrdinalShift(ctx, collectionID, movedID, shift, lastModified); err != nil {
		return ordinal.Shift{}, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("applied ordinal shift",
		slog.String("collection_id", collectionID.String()),
		slog.String("moved_id", movedID.String()),
		slog.Int("from", shift.From),
		slog.Int("to", shift.To),
		slog.Int("span", shift.Span()))
	return shift, nil
}

// Append returns the ordinal for a new item at the end of the collection,
// holding the collection lock so concurrent appends cannot collide.
func (s *OrdinalSequencer) Append(ctx context.Context, st store.OrdinalStore, collectionID uuid.UUID) (int, error) {
	if err := st.LockCollection(ctx, collectionID); err != nil {
		return 0, fmt.Errorf("failed to lock collection: %w", err)
	}
	return store.NextOrdinal(ctx, st, collectionID)
}
