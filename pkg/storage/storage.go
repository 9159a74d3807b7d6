package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("storage: key not found")

// Store is a synchronous JSON key-value store. Implementations must tolerate
// arbitrary JSON-serializable values and treat missing keys as ErrNotFound.
// An expiration of 0 means the key never expires.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
