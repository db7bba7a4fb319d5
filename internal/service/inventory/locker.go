package inventory

import (
	"context"
	"sync"
)

// mutexLocker is the single-process Locker used when no shared backend is configured.
type mutexLocker struct {
	mu sync.Mutex
}

func newMutexLocker() *mutexLocker {
	return &mutexLocker{}
}

func (l *mutexLocker) Lock(ctx context.Context, _ string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	return l.mu.Unlock, nil
}
