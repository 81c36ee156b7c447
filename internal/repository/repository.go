package repository

import "context"

// Store defines the interface for the persisted session key-value storage.
// This interface makes it easy to switch storage implementations.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// DeleteMany removes several keys so that, from the caller's perspective,
	// they disappear together. Missing keys are not an error.
	DeleteMany(ctx context.Context, keys ...string) error
}
