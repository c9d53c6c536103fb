package out

import "context"

// KeyValueStore is a local-storage style blob store. Get returns
// apperrors.ErrNotFound for an absent key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
