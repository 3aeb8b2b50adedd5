package lock

import (
	"context"
	"sync"
)

// Memory is an in-process Locker. It only excludes callers within one process.
type Memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]struct{})}
}

func (locker *Memory) TryLock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locker.mu.Lock()
	defer locker.mu.Unlock()

	if _, busy := locker.held[key]; busy {
		return nil, ErrNotAcquired
	}
	locker.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			locker.mu.Lock()
			delete(locker.held, key)
			locker.mu.Unlock()
		})
	}, nil
}
