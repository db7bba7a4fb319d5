package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It is the default driver and the test fake.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string

	// FailOn makes Set and SetMany fail for the listed keys.
	FailOn map[string]error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

var (
	_ Store       = (*Memory)(nil)
	_ BatchSetter = (*Memory)(nil)
)

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailOn[key]; err != nil {
		return err
	}
	m.slots[key] = value
	return nil
}

// SetMany writes every slot or none of them.
func (m *Memory) SetMany(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range values {
		if err := m.FailOn[key]; err != nil {
			return err
		}
	}
	for key, value := range values {
		m.slots[key] = value
	}
	return nil
}
