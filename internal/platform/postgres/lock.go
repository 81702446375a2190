package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/store"
)

// lockCollection takes a transaction-scoped advisory lock on one ordered
// collection. namespace keeps task collections (keyed by list id) apart from
// list-of-lists collections (keyed by user id).
func lockCollection(ctx context.Context, db store.DBTX, namespace string, id uuid.UUID) error {
	_, err := db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		namespace+":"+id.String())
	if err != nil {
		return fmt.Errorf("failed to lock %s collection %s: %w", namespace, id, MapError(err))
	}
	return nil
}
