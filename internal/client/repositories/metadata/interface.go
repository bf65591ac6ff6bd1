// Package metadata stores small key/value blobs in the local database.
// The session store keeps its token, profile and preferences here.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or nil when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
