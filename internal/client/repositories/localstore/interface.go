// Package localstore is the durable client-side mirror of the session:
// a small key-value table in a local sqlite database that survives restarts.
package localstore

import "context"

// Repository is a context-aware key-value store. Get of a missing key
// returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
