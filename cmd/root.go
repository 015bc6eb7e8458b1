package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/PolarWolf314/gitops-secrets/internal/logging"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose   bool
	debug     bool
	promptKey bool
	Logger    logger.Logger

	// keySource overrides the environment when the key was prompted for.
	keySource masterkey.Source

	// engineOptions configure every client the commands create.
	engineOptions []secrets.Option

	RootCmd = &cobra.Command{
		Use:   "gitops-secrets",
		Short: "Encrypt secrets into your repository and load them at runtime",
		Long: `gitops-secrets encrypts a set of secrets with a master key so the cipher
text can be committed next to your code. The master key is read from
GITOPS_SECRETS_MASTER_KEY on every operation.

Envelopes are written to .secrets/.secrets.enc.json by default and can be
turned into a JavaScript module with the build command.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Running %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

			// Existing variables win over .env.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				Logger.WarnfAlways("Failed to load .env: %v", err)
			} else if err == nil {
				Logger.Debugf("Loaded .env from the working directory")
			}

			if promptKey {
				key, err := utils.ReadPassphrase("Master key: ")
				if err != nil {
					return Logger.ErrorfAndReturn("failed to read master key: %w", err)
				}
				keySource = masterkey.Static(string(key))
			}
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVar(&promptKey, "prompt-key", false, "prompt for the master key instead of reading "+masterkey.EnvVar)

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(buildCmd)
	RootCmd.AddCommand(fetchCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(keyCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(initCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintln(RootCmd.ErrOrStderr(), formatError(err))
	return 1
}

// newClient returns a client reading the prompted key or the environment.
func newClient() *secrets.Client {
	return secrets.NewClient(masterkey.NewGuard(keySource), secrets.New(engineOptions...))
}

// ResetGlobalState resets flags and cached state between test runs.
func ResetGlobalState() {
	verbose = false
	debug = false
	promptKey = false
	keySource = nil
	resetEncryptState()
	resetDecryptState()
	resetBuildState()
	resetFetchState()
	resetRunState()
	resetInspectState()
	resetLogState()
	resetInitState()
	resetCobraFlagState(RootCmd)
}

func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
