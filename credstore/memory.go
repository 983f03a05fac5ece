package credstore

import "sync"

// Memory is an in-process Store used by tests and by targets without a
// persistent storage context. The zero value is not usable; call NewMemory.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

// TryRead implements Store.
func (m *Memory) TryRead(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	return v, ok
}

// TryWrite implements Store.
func (m *Memory) TryWrite(key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = value
	return true
}

// TryDelete implements Store.
func (m *Memory) TryDelete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return true
}
