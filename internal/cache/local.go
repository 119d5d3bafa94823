package cache

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is the in-process counterpart of RedisClient's lock methods,
// used when the bot runs as a single replica.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]localLock
	now   func() time.Time
}

type localLock struct {
	value   string
	expires time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[string]localLock),
		now:   time.Now,
	}
}

func (l *LocalLocker) AcquireLock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.locks[key]; ok && now.Before(held.expires) {
		return false, nil
	}
	l.locks[key] = localLock{value: value, expires: now.Add(ttl)}
	return true, nil
}

func (l *LocalLocker) ReleaseLock(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.value == value {
		delete(l.locks, key)
	}
	return nil
}

// RefreshLock extends a lock still held under value. An expired lock nobody
// else has taken counts as still held.
func (l *LocalLocker) RefreshLock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	held, ok := l.locks[key]
	if !ok || held.value != value {
		return false, nil
	}
	l.locks[key] = localLock{value: value, expires: l.now().Add(ttl)}
	return true, nil
}
