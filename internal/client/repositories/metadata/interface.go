// Package metadata is a small key-value store backed by the local SQLite
// database. The session store keeps the access token and the cached user
// record in it.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key and a non-nil empty slice for a key stored with no value.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
