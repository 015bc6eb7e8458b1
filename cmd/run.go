package cmd

import (
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var runFile string

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "envelope file or module to load (default from project config)")
	// Flags after the command name belong to the command.
	runCmd.Flags().SetInterspersed(false)
}

func resetRunState() {
	runFile = ""
}

var runCmd = &cobra.Command{
	Use:   "run [--file f] -- command [args...]",
	Short: "Run a command with decrypted secrets in its environment",
	Long: `Decrypts secrets and runs a command with them added to its environment.
Decrypted values override variables of the same name. Non-string values
are passed as JSON.

The command's exit status is returned as this command's exit status.

Examples:
  gitops-secrets run -- node server.js
  gitops-secrets run --file .secrets/prod.enc.json -- ./deploy.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting run command")

	result, err := workflows.Run(cmd.Context(), workflows.RunOptions{
		Client:  newClient(),
		File:    runFile,
		Command: args[0],
		Args:    args[1:],
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Injected %d variables, %s exited with %d", len(result.Keys), args[0], result.ExitCode)

	if result.ExitCode != 0 {
		return &exitCodeError{code: result.ExitCode}
	}
	return nil
}
