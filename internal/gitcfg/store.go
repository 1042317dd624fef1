package gitcfg

// Scope selects which git configuration file a query targets. Local and
// global scopes share the same key space but are queried independently.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeGlobal
)

// String returns the git command line flag for the scope.
func (s Scope) String() string {
	if s == ScopeGlobal {
		return "--global"
	}
	return "--local"
}

// Keys under which the prohibited patterns, allowed exceptions, and
// provider commands are persisted.
const (
	KeyPatterns  = "secrets.patterns"
	KeyAllowed   = "secrets.allowed"
	KeyProviders = "secrets.providers"
)

// Store is a multi-valued, ordered, de-duplicated key/value store.
//
// Every component receives a Store explicitly; nothing reads git config
// through ambient state, so tests can substitute MemoryStore.
type Store interface {
	// GetAll returns every value recorded for key in the given scope, in
	// insertion order. A key with no values yields an empty slice.
	GetAll(key string, scope Scope) ([]string, error)

	// Add appends value to key unless an identical value is already present
	// in that scope. It reports whether the value was inserted.
	Add(key, value string, scope Scope) (bool, error)
}

// Merged returns the global values for key followed by the local ones,
// mirroring git's own configuration precedence order.
func Merged(store Store, key string) ([]string, error) {
	global, err := store.GetAll(key, ScopeGlobal)
	if err != nil {
		return nil, err
	}
	local, err := store.GetAll(key, ScopeLocal)
	if err != nil {
		return nil, err
	}
	merged := make([]string, 0, len(global)+len(local))
	merged = append(merged, global...)
	merged = append(merged, local...)
	return merged, nil
}
