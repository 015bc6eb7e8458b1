package cmd

import (

	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	buildPath           string
	buildFormat         secrets.ModuleFormat
	buildCipherTextOnly bool
	buildInputFormat    string
)

func init() {
	buildCmd.Flags().StringVarP(&buildPath, "path", "p", "", "module file to write (default from project config)")
	buildCmd.Flags().Var(newModuleFormatValue(&buildFormat), "format", "module format (default: detect)")
	buildCmd.Flags().BoolVar(&buildCipherTextOnly, "cipher-text-only", false, "export only CIPHER_TEXT, without a loader")
	buildCmd.Flags().StringVar(&buildInputFormat, "input-format", "", "input format: json, dotenv or yaml (default: detect)")
}

func resetBuildState() {
	buildPath = ""
	buildFormat = secrets.FormatAuto
	buildCipherTextOnly = false
	buildInputFormat = ""
}

var buildCmd = &cobra.Command{
	Use:   "build [input]",
	Short: "Generate a JavaScript module embedding encrypted secrets",
	Long: `Generates a CommonJS or ES module exporting CIPHER_TEXT and a loader.

With an input file (or "-" for stdin) the secrets are encrypted first.
Without one, the project's existing envelope file is embedded as is and no
master key is needed.

The default module is always CommonJS. For a custom --path the format
follows the "type" field of package.json unless --format is given.

Examples:
  gitops-secrets build
  gitops-secrets build .env --path src/secrets.js
  gitops-secrets build secrets.json --format esm --cipher-text-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting build command")

	spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Building secrets module...")
	defer cleanup()

	result, err := workflows.Build(cmd.Context(), workflows.BuildOptions{
		Client:         newClient(),
		Input:          argOrEmpty(args),
		Stdin:          stdinOverride(cmd.InOrStdin()),
		InputFormat:    secrets.InputFormat(buildInputFormat),
		Path:           buildPath,
		Format:         buildFormat,
		CipherTextOnly: buildCipherTextOnly,
	})
	if err != nil {
		return err
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Built " + ui.Path.Sprint(relPath(result.ModulePath)) + " " +
		ui.Muted.Sprint(string(result.Format))
	return nil
}
