package gitcfg

import (
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AddIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	inserted, err := store.Add(KeyPatterns, "SECRETKEY", ScopeLocal)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.Add(KeyPatterns, "SECRETKEY", ScopeLocal)
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate add must be a no-op")

	values, err := store.GetAll(KeyPatterns, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, []string{"SECRETKEY"}, values)
}

func TestMemoryStore_PreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	for _, v := range []string{"third", "first", "second"} {
		_, err := store.Add(KeyAllowed, v, ScopeGlobal)
		require.NoError(t, err)
	}

	values, err := store.GetAll(KeyAllowed, ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "first", "second"}, values)
}

func TestMemoryStore_ScopesAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Add(KeyPatterns, "localpattern", ScopeLocal)
	require.NoError(t, err)

	global, err := store.GetAll(KeyPatterns, ScopeGlobal)
	require.NoError(t, err)
	assert.Empty(t, global)

	// The same value can live in both scopes.
	inserted, err := store.Add(KeyPatterns, "localpattern", ScopeGlobal)
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestMerged_GlobalBeforeLocal(t *testing.T) {
	store := NewMemoryStore()
	_, _ = store.Add(KeyPatterns, "local1", ScopeLocal)
	_, _ = store.Add(KeyPatterns, "global1", ScopeGlobal)

	merged, err := Merged(store, KeyPatterns)
	require.NoError(t, err)
	assert.Equal(t, []string{"global1", "local1"}, merged)
}

func TestGitStore_RoundTrip(t *testing.T) {
	requireGit(t)
	dir := initTestRepo(t)

	store := NewGitStore(dir, zerolog.Nop())

	values, err := store.GetAll(KeyPatterns, ScopeLocal)
	require.NoError(t, err)
	assert.Empty(t, values, "fresh repo must have no patterns")

	inserted, err := store.Add(KeyPatterns, `password\s*=`, ScopeLocal)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.Add(KeyPatterns, `password\s*=`, ScopeLocal)
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate add must be a no-op")

	values, err = store.GetAll(KeyPatterns, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, []string{`password\s*=`}, values)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "-C", dir, "init", "-q")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_SYSTEM=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v: %s", err, out)
	}
	return dir
}
