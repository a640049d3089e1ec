// Package store provides the string key-value persistence interface, a
// versioned SQLite implementation, and typed JSON helpers.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when a key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt wraps a stored value that cannot be decoded.
	ErrCorrupt = errors.New("corrupt value")
)

// Entry is one stored version of a key.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Key        string    `json:"key" yaml:"key"`
	Value      string    `json:"value" yaml:"value"`
	Version    int       `json:"version" yaml:"version"`
	Supersedes string    `json:"supersedes,omitempty" yaml:"supersedes,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// KV is a single global namespace of string values. The store never owns
// the data it holds; callers hand it whole serialized values.
type KV interface {
	// Get returns the latest value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close closes the store.
	Close() error
}
