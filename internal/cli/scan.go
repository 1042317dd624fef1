package cli

import (
	"os"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/aleister1102/gitsentry/internal/scanner"
	"github.com/spf13/cobra"
)

var flagScanRecursive bool

func init() {
	scanCmd.Flags().BoolVarP(&flagScanRecursive, "recursive", "r", false, "scan directories recursively")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [files...|-]",
	Short: "Scan files, directories, or stdin for prohibited patterns",
	Long: `Scan the given files for prohibited patterns. With no arguments,
every file tracked by the repository is scanned. Pass - to scan
standard input, e.g. piped diff or log output.

	Examples:
	  gitsentry scan
	  gitsentry scan -r vendor/ config/
	  git log -p | gitsentry scan -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		rules, err := newCompiler(store).Compile(cmd.Context())
		if err != nil {
			return err
		}
		engine := scanner.NewEngine(rules, appLogger)

		var report scanner.MatchReport
		switch {
		case len(args) == 1 && args[0] == "-":
			report, err = engine.ScanReader(scanner.StreamLocation, os.Stdin)
		case len(args) == 0:
			var repo *gitrepo.Repo
			repo, err = gitrepo.Open(".", appLogger)
			if err != nil {
				return err
			}
			var files []string
			files, err = repo.TrackedFiles()
			if err != nil {
				return err
			}
			report, err = engine.ScanPaths(files, false)
		default:
			report, err = engine.ScanPaths(args, flagScanRecursive)
		}
		if err != nil {
			return err
		}

		if violations := rules.Filter(report); len(violations) > 0 {
			return common.NewViolationError(violations.Lines())
		}
		return nil
	},
}
