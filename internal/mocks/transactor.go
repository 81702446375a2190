package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/store"
)

// Transactor implements store.Transactor by calling fn with a nil
// transaction. Err, when set, is returned instead of calling fn.
type Transactor struct {
	Err   error
	Calls int
}

var _ store.Transactor = (*Transactor)(nil)

// RunInTx implements store.Transactor.
func (t *Transactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}
