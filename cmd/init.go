package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initProvider     string
	initModuleFormat secrets.ModuleFormat
	initForce        bool
)

func init() {
	initCmd.Flags().StringVar(&initProvider, "provider", "", "default provider for fetch")
	initCmd.Flags().Var(newModuleFormatValue(&initModuleFormat), "module-format", "default module format")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func resetInitState() {
	initProvider = ""
	initModuleFormat = secrets.FormatAuto
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .gitops-secrets.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Provider:     initProvider,
			ModuleFormat: initModuleFormat,
			Force:        initForce,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Created "+ui.Path.Sprint(relPath(result.ConfigPath))+"\n"+
			ui.Info.Sprint("→")+" Set "+ui.Code.Sprint(masterkey.EnvVar)+" and run "+
			ui.Code.Sprint("gitops-secrets encrypt .env"))
		return nil
	},
}
