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
	fetchOut            string
	fetchModule         bool
	fetchFormat         secrets.ModuleFormat
	fetchCipherTextOnly bool
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "file to write (default from project config)")
	fetchCmd.Flags().BoolVar(&fetchModule, "module", false, "write a JavaScript module instead of an envelope file")
	fetchCmd.Flags().Var(newModuleFormatValue(&fetchFormat), "format", "module format with --module (default: detect)")
	fetchCmd.Flags().BoolVar(&fetchCipherTextOnly, "cipher-text-only", false, "with --module, export only CIPHER_TEXT")
}

func resetFetchState() {
	fetchOut = ""
	fetchModule = false
	fetchFormat = secrets.FormatAuto
	fetchCipherTextOnly = false
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [provider]",
	Short: "Fetch secrets from a provider and encrypt them",
	Long: `Downloads secrets from a secrets manager and encrypts them straight into
the repository. The plaintext is never written to disk.

The provider defaults to [provider].name in .gitops-secrets.toml.

Providers:
  doppler   reads the service token from DOPPLER_TOKEN

Examples:
  gitops-secrets fetch doppler
  gitops-secrets fetch doppler --module --format esm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting fetch command")

	spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Fetching secrets...")
	defer cleanup()

	result, err := workflows.Fetch(cmd.Context(), workflows.FetchOptions{
		Client:         newClient(),
		Provider:       argOrEmpty(args),
		Output:         fetchOut,
		Module:         fetchModule,
		Format:         fetchFormat,
		CipherTextOnly: fetchCipherTextOnly,
	})
	if err != nil {
		return err
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Fetched " + fmt.Sprint(len(result.Keys)) + " " +
		utils.Pluralize(len(result.Keys), "secret") + " from " + ui.Key.Sprint(result.Provider) +
		" into " + ui.Path.Sprint(relPath(result.OutputPath))
	return nil
}
