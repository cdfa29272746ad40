// Package kvstore abstracts the client-session key/value store so the same
// components can run against memory, an embedded database, or redis.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kvstore: not found")

// Store is a flat key/value store with last-write-wins semantics.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
