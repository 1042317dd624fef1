package scanner

import (
	"context"
	"regexp"
	"strings"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/rs/zerolog"
)

// Ruleset is the compiled form of the prohibited and allowed patterns for a
// single scan pass. It is derived per invocation and owns nothing durable.
type Ruleset struct {
	prohibited *regexp.Regexp // nil when no patterns are configured
	allowed    *regexp.Regexp // nil when nothing is allow-listed
}

// Empty reports whether no prohibited patterns are configured. Scanning
// with an empty ruleset is always clean so an un-configured installation
// never blocks unrelated work.
func (rs *Ruleset) Empty() bool {
	return rs == nil || rs.prohibited == nil
}

// wordEdge guards the leading edge of the combined prohibited expression: a
// match must begin at the start of a line or after a non-word character.
// regexp's \b is unusable here because escaped literals can begin or end
// with non-word characters (=, +, /), and \b then inverts the test.
const wordEdge = `(?:^|[^0-9A-Za-z_])`

// NewRuleset compiles prohibited and allowed pattern lists. The prohibited
// patterns are joined as alternatives of one expression guarded at its
// leading edge, so KEY never matches inside MONKEY but SECRETKEY still
// flags token=SECRETKEY123. Allowed patterns are compiled unanchored.
func NewRuleset(prohibited, allowed []string) (*Ruleset, error) {
	rs := &Ruleset{}

	if len(prohibited) > 0 {
		combined, err := regexp.Compile(wordEdge + `(?:` + strings.Join(prohibited, "|") + `)`)
		if err != nil {
			return nil, common.NewEngineFaultError(err)
		}
		rs.prohibited = combined
	}

	if len(allowed) > 0 {
		combined, err := regexp.Compile(`(?:` + strings.Join(allowed, "|") + `)`)
		if err != nil {
			return nil, common.NewEngineFaultError(err)
		}
		rs.allowed = combined
	}

	return rs, nil
}

// PatternRunner turns registered provider commands into pattern strings.
// The concrete implementation lives in the provider package; the compiler
// only depends on the capability.
type PatternRunner interface {
	Run(ctx context.Context, commands []string) ([]string, error)
}

// Compiler merges the store's static patterns with provider-derived ones
// into a Ruleset for one scan pass.
type Compiler struct {
	store  gitcfg.Store
	runner PatternRunner
	logger zerolog.Logger
}

// NewCompiler creates a compiler over the given store. runner may be nil,
// in which case provider commands are ignored.
func NewCompiler(store gitcfg.Store, runner PatternRunner, logger zerolog.Logger) *Compiler {
	return &Compiler{
		store:  store,
		runner: runner,
		logger: logger.With().Str("module", "Compiler").Logger(),
	}
}

// Compile gathers static patterns, runs every registered provider, and
// compiles the result together with the allowed exceptions.
func (c *Compiler) Compile(ctx context.Context) (*Ruleset, error) {
	patterns, err := gitcfg.Merged(c.store, gitcfg.KeyPatterns)
	if err != nil {
		return nil, err
	}

	if c.runner != nil {
		commands, err := gitcfg.Merged(c.store, gitcfg.KeyProviders)
		if err != nil {
			return nil, err
		}
		derived, err := c.runner.Run(ctx, commands)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, derived...)
	}

	allowed, err := gitcfg.Merged(c.store, gitcfg.KeyAllowed)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("patterns", len(patterns)).
		Int("allowed", len(allowed)).
		Msg("Compiled pattern set")

	return NewRuleset(patterns, allowed)
}
