package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value under key into a T. A missing key returns
// ErrNotFound; an undecodable value returns an error wrapping ErrCorrupt.
func GetJSON[T any](ctx context.Context, kv KV, key string) (T, error) {
	var v T
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return v, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}
