package cli

import (
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/aleister1102/gitsentry/internal/hook"
	"github.com/spf13/cobra"
)

var flagInstallForce bool

func init() {
	installCmd.Flags().BoolVarP(&flagInstallForce, "force", "f", false, "overwrite hooks that already exist")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install [target-dir]",
	Short: "Install the gitsentry hook scripts",
	Long: `Install dispatcher scripts into the repository's hook slots
(commit-msg, pre-commit, prepare-commit-msg). With a target directory
argument the scripts are written there instead, e.g. for a shared
core.hooksPath or an init.templateDir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var hooksDir string
		if len(args) == 1 {
			hooksDir = args[0]
		} else {
			repo, err := gitrepo.Open(".", appLogger)
			if err != nil {
				return err
			}
			hooksDir, err = repo.HooksDir()
			if err != nil {
				return err
			}
		}

		return hook.NewInstaller(hooksDir, appLogger).Install(flagInstallForce)
	},
}
