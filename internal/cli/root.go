package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/config"
	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/aleister1102/gitsentry/internal/journal"
	"github.com/aleister1102/gitsentry/internal/logger"
	"github.com/aleister1102/gitsentry/internal/provider"
	"github.com/aleister1102/gitsentry/internal/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig string

	cfg       *config.GlobalConfig
	appLogger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gitsentry",
	Short:         "Prevents secrets and credentials from being committed to a git repository",
	Long: `gitsentry scans commit messages, staged changes, and incoming merge
commits against configurable prohibited patterns, blocking any git
operation that would introduce secret material. Patterns and allowed
exceptions are stored in git config under the secrets.* namespace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadGlobalConfig(flagConfig)
		if err != nil {
			return err
		}
		if err := config.ValidateConfig(loaded); err != nil {
			return err
		}
		cfg = loaded

		appLogger, err = logger.New(cfg.LogConfig)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the gitsentry configuration file")
}

const remediationText = `
[ERROR] Matched one or more prohibited patterns

Possible mitigations:
- Mark false positives as allowed:  gitsentry add --allowed <pattern>
- Review the configured patterns:   gitsentry list
- Skip this check once by committing with git's --no-verify option
`

// Execute runs the root command and maps the resulting error to the exit
// status contract: 0 clean, 1 violation or refused operation, and the
// matching engine's own code for engine faults.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return common.ExitClean
	}

	var violation *common.ViolationError
	if errors.As(err, &violation) {
		for _, line := range violation.Lines {
			fmt.Fprintln(os.Stderr, line)
		}
		fmt.Fprint(os.Stderr, remediationText)
	} else {
		fmt.Fprintln(os.Stderr, "gitsentry:", err)
	}
	return common.ExitCode(err)
}

// scopeFor maps the --global flag onto a config store scope.
func scopeFor(global bool) gitcfg.Scope {
	if global {
		return gitcfg.ScopeGlobal
	}
	return gitcfg.ScopeLocal
}

// newStore creates the git-config backed store for the working directory.
func newStore() gitcfg.Store {
	return gitcfg.NewGitStore(".", appLogger)
}

// newCompiler wires the store and provider runner into a pattern compiler.
func newCompiler(store gitcfg.Store) *scanner.Compiler {
	runner := provider.NewRunner(cfg.ProviderConfig, appLogger)
	return scanner.NewCompiler(store, runner, appLogger)
}

// openJournal opens the scan journal for the repository, or returns nil
// when journaling is disabled or unavailable. Journal trouble never blocks
// an operation.
func openJournal(repo *gitrepo.Repo) *journal.Journal {
	if !cfg.JournalConfig.Enabled {
		return nil
	}

	path := cfg.JournalConfig.Path
	if path == "" {
		gitDir, err := repo.GitDir()
		if err != nil {
			appLogger.Warn().Err(err).Msg("Cannot locate git dir for journal")
			return nil
		}
		path = filepath.Join(gitDir, "gitsentry", "journal.db")
	}

	jnl, err := journal.Open(path, appLogger)
	if err != nil {
		appLogger.Warn().Err(err).Msg("Cannot open scan journal")
		return nil
	}
	return jnl
}
