package scanner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleset_EmptyPatternSet(t *testing.T) {
	rules, err := NewRuleset(nil, nil)
	require.NoError(t, err)
	assert.True(t, rules.Empty(), "no patterns must produce the no-patterns sentinel")

	engine := NewEngine(rules, zerolog.Nop())
	report, err := engine.ScanReader(StreamLocation, strings.NewReader("anything at all\nAKIAIOSFODNN7EXAMPLE"))
	require.NoError(t, err)
	assert.Empty(t, report, "scanning with zero patterns never fails")
}

func TestNewRuleset_MalformedPatternIsEngineFault(t *testing.T) {
	_, err := NewRuleset([]string{`[unclosed`}, nil)
	require.Error(t, err)

	var fault *common.EngineFaultError
	assert.True(t, errors.As(err, &fault), "malformed pattern must surface as an engine fault")
	assert.Equal(t, common.ExitEngineFault, common.ExitCode(err))
}

func TestNewRuleset_MalformedAllowedPatternIsEngineFault(t *testing.T) {
	_, err := NewRuleset([]string{"SECRETKEY"}, []string{`(?P<broken`})
	require.Error(t, err)

	var fault *common.EngineFaultError
	assert.True(t, errors.As(err, &fault))
}

// stubRunner implements PatternRunner for compiler tests.
type stubRunner struct {
	patterns []string
	err      error
	commands []string
}

func (s *stubRunner) Run(_ context.Context, commands []string) ([]string, error) {
	s.commands = commands
	return s.patterns, s.err
}

func TestCompiler_MergesStoreAndProviderPatterns(t *testing.T) {
	store := gitcfg.NewMemoryStore()
	_, _ = store.Add(gitcfg.KeyPatterns, "STATICKEY", gitcfg.ScopeLocal)
	_, _ = store.Add(gitcfg.KeyProviders, "some-provider", gitcfg.ScopeLocal)

	runner := &stubRunner{patterns: []string{"DERIVEDKEY"}}
	compiler := NewCompiler(store, runner, zerolog.Nop())

	rules, err := compiler.Compile(context.Background())
	require.NoError(t, err)
	require.False(t, rules.Empty())
	assert.Equal(t, []string{"some-provider"}, runner.commands)

	engine := NewEngine(rules, zerolog.Nop())
	for _, line := range []string{"token=STATICKEY", "token=DERIVEDKEY"} {
		report, err := engine.ScanReader(StreamLocation, strings.NewReader(line))
		require.NoError(t, err)
		assert.Len(t, report, 1, "line %q should match", line)
	}
}

func TestCompiler_ProviderEscapedLiteralIsDetected(t *testing.T) {
	// Credential values extracted by providers arrive as escaped literals
	// whose edge characters are often non-word (=, +, /). The compiled
	// ruleset must still flag them on a realistic assignment line.
	store := gitcfg.NewMemoryStore()
	_, _ = store.Add(gitcfg.KeyProviders, "creds-provider", gitcfg.ScopeLocal)

	runner := &stubRunner{patterns: []string{gitcfg.EscapeLiteral("ab+cd/ef==")}}
	compiler := NewCompiler(store, runner, zerolog.Nop())

	rules, err := compiler.Compile(context.Background())
	require.NoError(t, err)

	engine := NewEngine(rules, zerolog.Nop())
	report, err := engine.ScanReader(StreamLocation, strings.NewReader("aws_secret_access_key = ab+cd/ef==\n"))
	require.NoError(t, err)
	require.Len(t, report, 1, "provider-derived literal must be flagged")

	assert.Len(t, rules.Filter(report), 1, "no allowed pattern suppresses it")
}

func TestCompiler_RunnerErrorPropagates(t *testing.T) {
	store := gitcfg.NewMemoryStore()
	_, _ = store.Add(gitcfg.KeyProviders, "broken-provider", gitcfg.ScopeLocal)

	runner := &stubRunner{err: errors.New("provider exploded")}
	compiler := NewCompiler(store, runner, zerolog.Nop())

	_, err := compiler.Compile(context.Background())
	assert.Error(t, err)
}

func TestCompiler_NilRunnerSkipsProviders(t *testing.T) {
	store := gitcfg.NewMemoryStore()
	_, _ = store.Add(gitcfg.KeyProviders, "never-run", gitcfg.ScopeLocal)

	compiler := NewCompiler(store, nil, zerolog.Nop())
	rules, err := compiler.Compile(context.Background())
	require.NoError(t, err)
	assert.True(t, rules.Empty())
}
