package cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/judgebase/judgebase-api/internal/credential"
)

var credentialHash bool

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Portal credential helpers",
}

var credentialGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a new portal password, and its argon2id hash with --hash",
	// needs no config or database
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		password, err := credential.Generate()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)

		if credentialHash {
			hash, err := credential.Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
		}
		return nil
	},
}

func init() {
	credentialGenerateCmd.Flags().BoolVar(&credentialHash, "hash", false, "Also print the argon2id hash")

	credentialCmd.AddCommand(credentialGenerateCmd)
	rootCmd.AddCommand(credentialCmd)
}
