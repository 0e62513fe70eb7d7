package formstash

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by a [Storage] that has no room left for a
// write.
var ErrQuotaExceeded = errors.New("formstash: storage quota exceeded")

// Storage is a synchronous string key-value store such as the browser's
// window.localStorage.
type Storage interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// MemoryStorage is an in-memory [Storage]. The zero value is ready to use.
//
// MemoryStorage is safe for concurrent use.
type MemoryStorage struct {
	// Quota limits the combined length in bytes of all keys and values. Zero
	// means unlimited.
	Quota int

	mu    sync.Mutex
	items map[string]string
	used  int
}

// NewMemoryStorage returns an empty [MemoryStorage] with the given quota.
func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{Quota: quota}
}

// Get implements [Storage].
func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.items[key]
	return v, ok
}

// Set implements [Storage]. A write that would take the store over its quota
// leaves the previous value in place and returns [ErrQuotaExceeded].
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.items[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if m.Quota > 0 && used > m.Quota {
		return ErrQuotaExceeded
	}

	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[key] = value
	m.used = used
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
