package cli

import (
	"fmt"

	"github.com/aleister1102/gitsentry/internal/gitcfg"
	"github.com/aleister1102/gitsentry/internal/provider"
	"github.com/spf13/cobra"
)

var flagRegisterAwsGlobal bool

func init() {
	registerAwsCmd.Flags().BoolVar(&flagRegisterAwsGlobal, "global", false, "store in the global git config instead of the repository's")
	rootCmd.AddCommand(registerAwsCmd)
	rootCmd.AddCommand(awsProviderCmd)
}

var registerAwsCmd = &cobra.Command{
	Use:   "register-aws",
	Short: "Register the AWS credential patterns and credentials-file provider",
	Long: `Register the AWS secret patterns (access key ids, secret access keys,
account ids), the credentials-file provider, and the two canonical AWS
example values as allowed exceptions. Already-registered entries are
skipped, so the operation is idempotent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		scope := scopeFor(flagRegisterAwsGlobal)

		if _, err := store.Add(gitcfg.KeyProviders, provider.AWSProviderCommand, scope); err != nil {
			return err
		}
		for _, pattern := range provider.AWSPatterns {
			if _, err := store.Add(gitcfg.KeyPatterns, pattern, scope); err != nil {
				return err
			}
		}
		for _, allowed := range provider.AWSAllowed {
			if _, err := store.Add(gitcfg.KeyAllowed, allowed, scope); err != nil {
				return err
			}
		}
		return nil
	},
}

var awsProviderCmd = &cobra.Command{
	Use:    "aws-provider [credentials-file]",
	Short:  "Emit the credential values of an AWS credentials file as literal patterns",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		patterns, err := provider.NewAWSCredentialsProvider(path).Patterns(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range patterns {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}
