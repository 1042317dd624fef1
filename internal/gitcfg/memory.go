package gitcfg

import "sync"

// MemoryStore is an in-memory Store used by tests and by components that
// need a scratch pattern set without touching git config.
type MemoryStore struct {
	mu     sync.Mutex
	values map[Scope]map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[Scope]map[string][]string{
			ScopeLocal:  {},
			ScopeGlobal: {},
		},
	}
}

// GetAll returns the values stored for key in the given scope.
func (ms *MemoryStore) GetAll(key string, scope Scope) ([]string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored := ms.values[scope][key]
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

// Add inserts value for key unless it is already present in that scope.
func (ms *MemoryStore) Add(key, value string, scope Scope) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, v := range ms.values[scope][key] {
		if v == value {
			return false, nil
		}
	}
	ms.values[scope][key] = append(ms.values[scope][key], value)
	return true, nil
}
