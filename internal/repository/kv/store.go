// Package kv describes the named string slots the shop state is kept in.
package kv

import "context"

// Store is a get/set string store keyed by slot name.
type Store interface {
	// Get returns the slot value; ok is false when the slot was never written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// BatchSetter is implemented by stores able to write several slots atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string]string) error
}
