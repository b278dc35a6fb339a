// Package storage defines the key-value document store boundary the
// layout engine persists through. The engine only needs get/set on
// opaque documents; anything smarter (multi-tab write serialization,
// remote sync) belongs to the host.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored document.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal document store keyed by string.
type Store interface {
	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the document under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the document under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in lexicographic order.
	Keys(ctx context.Context) ([]string, error)
}
