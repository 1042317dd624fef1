package cli

import (
	"fmt"

	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/spf13/cobra"
)

var flagListGlobal bool

func init() {
	listCmd.Flags().BoolVar(&flagListGlobal, "global", false, "list only the global git config entries")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured patterns, allowed exceptions, and providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		keys := []string{gitcfg.KeyPatterns, gitcfg.KeyAllowed, gitcfg.KeyProviders}

		scopes := []gitcfg.Scope{gitcfg.ScopeGlobal, gitcfg.ScopeLocal}
		if flagListGlobal {
			scopes = []gitcfg.Scope{gitcfg.ScopeGlobal}
		}

		for _, scope := range scopes {
			for _, key := range keys {
				values, err := store.GetAll(key, scope)
				if err != nil {
					return err
				}
				for _, v := range values {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", key, v)
				}
			}
		}
		return nil
	},
}
