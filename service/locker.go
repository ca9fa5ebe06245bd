package service

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrLockTimeout is returned when a transfer cannot acquire both account
// locks within the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for account locks")

// accountLocker hands out per-account exclusive locks keyed by IBAN.
// Transfers over disjoint account pairs never block each other; transfers
// sharing an account serialize on it.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]chan struct{})}
}

func (l *accountLocker) lockFor(id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[id] = ch
	}
	return ch
}

// acquire takes the lock of every id, always in ascending id order so that
// two concurrent transfers over the same pair in opposite directions cannot
// deadlock. On success it returns a release function; on context expiry it
// releases anything already held and returns ErrLockTimeout.
func (l *accountLocker) acquire(ctx context.Context, ids ...string) (func(), error) {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, id := range sorted {
		ch := l.lockFor(id)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-ctx.Done():
			release()
			return nil, ErrLockTimeout
		}
	}
	return release, nil
}
