// Package lockmap provides in-process mutual exclusion keyed by an
// arbitrary string. The reservation committer keys locks by
// (court, date) so commits for the same day on the same court are
// serialized while unrelated courts proceed in parallel.
package lockmap

import (
	"context"
	"sync"
)

type entry struct {
	token chan struct{}
	refs  int
}

type LockMap struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *LockMap {
	return &LockMap{
		entries: make(map[string]*entry),
	}
}

// Acquire blocks until the key's lock is held or ctx expires. On
// success the returned release function must be called exactly once;
// calling it more than once is a no-op. Entries are reference-counted
// and removed from the map once the last interested caller is done, so
// the map does not grow with the number of distinct keys ever seen.
func (m *LockMap) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{token: make(chan struct{}, 1)}
		e.token <- struct{}{}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case <-e.token:
		var once sync.Once
		release := func() {
			once.Do(func() {
				e.token <- struct{}{}
				m.unref(key, e)
			})
		}
		return release, nil
	case <-ctx.Done():
		m.unref(key, e)
		return nil, ctx.Err()
	}
}

func (m *LockMap) unref(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
