package cli

import (
	"strings"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/spf13/cobra"
)

var (
	flagAddAllowed bool
	flagAddLiteral bool
	flagAddGlobal  bool

	flagAddProviderGlobal bool
)

func init() {
	addCmd.Flags().BoolVarP(&flagAddAllowed, "allowed", "a", false, "register an allowed exception instead of a prohibited pattern")
	addCmd.Flags().BoolVarP(&flagAddLiteral, "literal", "l", false, "escape the value so it only ever matches itself")
	addCmd.Flags().BoolVar(&flagAddGlobal, "global", false, "store in the global git config instead of the repository's")
	rootCmd.AddCommand(addCmd)

	addProviderCmd.Flags().BoolVar(&flagAddProviderGlobal, "global", false, "store in the global git config instead of the repository's")
	rootCmd.AddCommand(addProviderCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Register a prohibited pattern or an allowed exception",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := args[0]
		if flagAddLiteral {
			value = gitcfg.EscapeLiteral(value)
		}

		key := gitcfg.KeyPatterns
		if flagAddAllowed {
			key = gitcfg.KeyAllowed
		}

		inserted, err := newStore().Add(key, value, scopeFor(flagAddGlobal))
		if err != nil {
			return err
		}
		if !inserted {
			return common.WrapError(common.ErrDuplicateValue, value)
		}
		return nil
	},
}

var addProviderCmd = &cobra.Command{
	Use:   "add-provider <command> [args...]",
	Short: "Register a command whose output supplies additional prohibited patterns",
	Long: `Register an external command that is executed on every scan; each
non-empty line of its standard output becomes one prohibited pattern.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commandLine := strings.Join(args, " ")

		inserted, err := newStore().Add(gitcfg.KeyProviders, commandLine, scopeFor(flagAddProviderGlobal))
		if err != nil {
			return err
		}
		if !inserted {
			return common.WrapError(common.ErrDuplicateValue, commandLine)
		}
		return nil
	},
}
