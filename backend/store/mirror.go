package store

import "sync"

// Mirror is a local copy of one collection. It is overwritten wholesale by
// every snapshot (no merging), except during an optimistic delete window
// where an entity is removed locally before the gateway confirms.
type Mirror[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
}

func NewMirror[T any](id func(T) string) *Mirror[T] {
	return &Mirror[T]{id: id}
}

// Replace installs a fresh snapshot, discarding local state.
func (m *Mirror[T]) Replace(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
}

// Items returns a copy of the current snapshot.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.items...)
}

func (m *Mirror[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Remove takes the entity out of the mirror immediately and returns a
// restore func that puts back the exact previous snapshot (same elements,
// same order). Callers invoke restore when the gateway delete fails.
func (m *Mirror[T]) Remove(id string) (restore func(), ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := append([]T(nil), m.items...)
	kept := m.items[:0:0]
	for _, item := range m.items {
		if m.id(item) == id {
			ok = true
			continue
		}
		kept = append(kept, item)
	}
	if !ok {
		return nil, false
	}
	m.items = kept

	restore = func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.items = previous
	}
	return restore, true
}
