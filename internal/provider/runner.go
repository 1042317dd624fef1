package provider

import (
	"context"
	"time"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/config"
	"github.com/rs/zerolog"
)

// Runner executes every registered provider command and collects the
// emitted patterns for one scan pass.
type Runner struct {
	cfg    config.ProviderConfig
	logger zerolog.Logger
}

// NewRunner creates a runner with the given provider configuration.
func NewRunner(cfg config.ProviderConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger.With().Str("module", "ProviderRunner").Logger(),
	}
}

// Run executes each provider command in registration order. A failing or
// missing provider contributes nothing and, unless on_error is "fail",
// does not abort the scan: scanning stays best-effort across provider
// availability.
func (r *Runner) Run(ctx context.Context, commands []string) ([]string, error) {
	var patterns []string
	for _, commandLine := range commands {
		derived, err := r.runOne(ctx, commandLine)
		if err != nil {
			r.logger.Warn().Err(err).Str("provider", commandLine).Msg("Provider failed")
			if r.cfg.OnError == config.ProviderOnErrorFail {
				return nil, common.WrapError(err, "provider execution failed")
			}
			continue
		}
		patterns = append(patterns, derived...)
	}
	return patterns, nil
}

// runOne executes a single provider under the configured timeout.
func (r *Runner) runOne(ctx context.Context, commandLine string) ([]string, error) {
	p, err := NewCommandProvider(commandLine)
	if err != nil {
		return nil, err
	}

	if r.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	return p.Patterns(ctx)
}
