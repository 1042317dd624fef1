package cli

import (
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/aleister1102/gitsentry/internal/hook"
	"github.com/spf13/cobra"
)

func init() {
	hookCmd.AddCommand(commitMsgHookCmd, preCommitHookCmd, prepareCommitMsgHookCmd)
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Internal hook entry points invoked by the installed scripts",
	Hidden: true,
}

var commitMsgHookCmd = &cobra.Command{
	Use:   "commit-msg <message-file>",
	Short: "Scan the proposed commit message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, hook.CommitMsgEvent{MessageFile: args[0]})
	},
}

var preCommitHookCmd = &cobra.Command{
	Use:   "pre-commit",
	Short: "Scan the staged changes against the head commit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatch(cmd, hook.PreCommitEvent{})
	},
}

var prepareCommitMsgHookCmd = &cobra.Command{
	Use:   "prepare-commit-msg <message-file> [source [commit]]",
	Short: "Scan incoming commits when preparing a merge commit message",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := hook.PrepareCommitMsgEvent{MessageFile: args[0]}
		if len(args) > 1 {
			ev.Source = args[1]
		}
		if len(args) > 2 {
			ev.Commit = args[2]
		}
		return dispatch(cmd, ev)
	},
}

// dispatch wires the repository, pattern compiler, and journal into a
// dispatcher and submits the event.
func dispatch(cmd *cobra.Command, ev hook.Event) error {
	repo, err := gitrepo.Open(".", appLogger)
	if err != nil {
		return err
	}

	jnl := openJournal(repo)
	if jnl != nil {
		defer jnl.Close()
	}

	dispatcher := hook.NewDispatcher(repo, newCompiler(newStore()), jnl, appLogger)
	return dispatcher.Handle(cmd.Context(), ev)
}
