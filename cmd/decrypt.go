package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var decryptFormat string

func init() {
	decryptCmd.Flags().StringVarP(&decryptFormat, "format", "f", "json", "output format: json, dotenv or shell")
}

func resetDecryptState() {
	decryptFormat = "json"
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypt an envelope file and print its secrets",
	Long: `Decrypts an envelope file or generated module and prints the secrets.

Examples:
  gitops-secrets decrypt
  gitops-secrets decrypt .secrets/.secrets.enc.js --format dotenv > .env
  eval "$(gitops-secrets decrypt --format shell)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")

	format, err := workflows.ParseOutputFormat(decryptFormat)
	if err != nil {
		return err
	}

	_, cleanup := startSpinner(cmd.OutOrStdout(), "Decrypting secrets...")
	result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
		Client: newClient(),
		Path:   argOrEmpty(args),
	})
	cleanup()
	if err != nil {
		return err
	}
	Logger.Infof("Decrypted %d keys from %s", len(result.Payload), relPath(result.Path))

	out, err := workflows.RenderPayload(result.Payload, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
