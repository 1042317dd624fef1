package cli

import (
	"fmt"
	"time"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/spf13/cobra"
)

var flagHistoryCount int

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryCount, "count", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scan decisions recorded by the hooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := gitrepo.Open(".", appLogger)
		if err != nil {
			return err
		}

		jnl := openJournal(repo)
		if jnl == nil {
			return common.NewError("scan journal is disabled or unavailable")
		}
		defer jnl.Close()

		entries, err := jnl.Recent(cmd.Context(), flagHistoryCount)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %-9s findings=%d  %s\n",
				e.CreatedAt.Local().Format(time.RFC3339), e.Event, e.Outcome, e.Findings, e.Target)
		}
		return nil
	},
}
