package memory

import (
	"context"

	"helpcenter/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx holds the store's write lock for the whole of fn and restores the
// previous state if fn fails or panics. Nested calls join the outer transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) (err error) {
	if owner, ok := repositories.GetTx(ctx).(*Store); ok && owner == tm.store {
		return fn(ctx)
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snap := tm.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			tm.store.restore(snap)
			panic(p)
		}
	}()

	if err := fn(repositories.SetTx(ctx, tm.store)); err != nil {
		tm.store.restore(snap)
		return err
	}
	return nil
}
