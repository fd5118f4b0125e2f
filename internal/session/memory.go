package session

import "sync"

// DefaultQuota is the default byte budget for a MemoryBackend, in line with
// the storage budgets browsers grant per origin.
const DefaultQuota = 5 << 20 // 5MB

// MemoryBackend is a quota-bounded in-memory Backend. Values live for the
// process lifetime only; a write that would push total stored bytes past the
// budget fails with ErrQuotaExceeded.
type MemoryBackend struct {
	mu       sync.RWMutex
	data     map[string]string
	maxBytes int
}

// NewMemoryBackend returns a MemoryBackend with the default quota.
func NewMemoryBackend() *MemoryBackend {
	return NewMemoryBackendWithQuota(DefaultQuota)
}

// NewMemoryBackendWithQuota returns a MemoryBackend with a custom byte budget.
func NewMemoryBackendWithQuota(maxBytes int) *MemoryBackend {
	return &MemoryBackend{
		data:     make(map[string]string),
		maxBytes: maxBytes,
	}
}

// Get returns the value stored under key.
func (m *MemoryBackend) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key, enforcing the byte budget. The key's previous
// value still counts against the budget until it is deleted.
func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := len(key) + len(value)
	for k, v := range m.data {
		total += len(k) + len(v)
	}
	if total > m.maxBytes {
		return ErrQuotaExceeded
	}

	m.data[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryBackend) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len returns the number of stored keys.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
