// Package metadata is a small key/value table in the local SQLite store.
// The session store keeps tokens and the post-login redirect here.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a key
// that was never set and a non-nil slice for one that was, even when empty.
// Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
