package repositories

import "context"

// txContextKey is the type for transaction context keys
type txContextKey string

// txKey is the context key for storing the transaction owner
const txKey txContextKey = "store_tx"

// SetTx marks ctx as running inside a transaction owned by owner.
// Repositories compare the owner with themselves to avoid re-locking.
func SetTx(ctx context.Context, owner any) context.Context {
	return context.WithValue(ctx, txKey, owner)
}

// GetTx returns the transaction owner stored in ctx, or nil.
func GetTx(ctx context.Context) any {
	return ctx.Value(txKey)
}
