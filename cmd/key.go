package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	keyCmd.AddCommand(keyCheckCmd)
	keyCmd.AddCommand(keyGenerateCmd)
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Check or generate the master key",
}

var keyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the master key without using it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.KeyCheck(cmd.Context(), workflows.KeyCheckOptions{
			Guard: masterkey.NewGuard(keySource),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Master key is valid "+
			ui.Muted.Sprintf("%d characters", result.Length))
		return nil
	},
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a new random master key",
	Long: `Prints a new random master key to stdout.

Store it in your secrets manager or CI settings as ` + masterkey.EnvVar + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := workflows.KeyGenerate(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}
