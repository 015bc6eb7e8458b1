package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptOut         string
	encryptStdout      bool
	encryptInputFormat string
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptOut, "out", "o", "", "envelope file to write (default from project config)")
	encryptCmd.Flags().BoolVar(&encryptStdout, "stdout", false, "print the envelope instead of writing a file")
	encryptCmd.Flags().StringVar(&encryptInputFormat, "input-format", "", "input format: json, dotenv or yaml (default: detect)")
}

func resetEncryptState() {
	encryptOut = ""
	encryptStdout = false
	encryptInputFormat = ""
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [input]",
	Short: "Encrypt a secrets file into an envelope",
	Long: `Encrypts a JSON, dotenv or YAML secrets file with the master key.

Without an input file, secrets are read from stdin.

Examples:
  gitops-secrets encrypt .env
  gitops-secrets encrypt secrets.json --out config/app.enc.json
  doppler secrets download --no-file | gitops-secrets encrypt --stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encrypt command")

	spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Encrypting secrets...")
	defer cleanup()

	result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
		Client:      newClient(),
		Input:       argOrEmpty(args),
		Stdin:       stdinOverride(cmd.InOrStdin()),
		InputFormat: secrets.InputFormat(encryptInputFormat),
		Output:      encryptOut,
		Stdout:      encryptStdout,
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Encrypted %d keys with %d iterations", len(result.Keys), result.Iterations)

	if encryptStdout {
		cleanup()
		fmt.Fprintln(cmd.OutOrStdout(), result.CipherText)
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Encrypted " + fmt.Sprint(len(result.Keys)) + " " +
		utils.Pluralize(len(result.Keys), "secret") + " to " + ui.Path.Sprint(relPath(result.OutputPath)) + "\n" +
		ui.Info.Sprint("→") + " You can now safely commit " + ui.Path.Sprint(relPath(result.OutputPath))
	return nil
}
