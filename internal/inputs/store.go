package inputs

import (
	"maps"
	"strings"
	"sync"
)

// KeyPrefix namespaces resolved input values inside a Store.
const KeyPrefix = "mcp.input."

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)

// Store is a durable keyed cache of previously supplied input values.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// List returns a copy of every stored key and value.
	List() (map[string]string, error)

	// Clear removes every stored value.
	Clear() error
}

// Key returns the store key for the input with the given id.
func Key(id string) string {
	return KeyPrefix + strings.TrimSpace(id)
}

// IDFromKey returns the input id for a store key.
func IDFromKey(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// MemoryStore is a Store that lives for the lifetime of the process.
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryStore) List() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.values), nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = map[string]string{}
	return nil
}
