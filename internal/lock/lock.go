// Package lock serializes work per key, such as the read-decide-write of a
// client upsert by email.
package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrLockTimeout = errors.New("lock_timeout")

type Locker interface {
	// Lock blocks until key is held or ctx ends. The returned func releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func EmailKey(email string) string {
	return "client-email:" + strings.ToLower(strings.TrimSpace(email))
}

// LocalLocker is a keyed mutex. It only serializes within one process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]chan struct{})}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			ch = make(chan struct{})
			l.held[key] = ch
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(ch)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ErrLockTimeout
		}
	}
}

var _ Locker = (*LocalLocker)(nil)
