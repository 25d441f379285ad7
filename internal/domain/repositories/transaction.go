package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs multi-collection changes atomically.
type TransactionManager interface {
	// ExecTx executes fn within a transaction; a returned error rolls it back.
	ExecTx(ctx context.Context, fn TxFn) error
}
