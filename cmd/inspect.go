package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var inspectFailOnStale bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectFailOnStale, "fail-on-stale", false, "exit non-zero if any envelope uses fewer iterations than the default")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [patterns...]",
	Short: "List envelope files and their encryption parameters",
	Long: `Lists envelope files in the project with their format tag and PBKDF2
iteration count. Nothing is decrypted and no master key is needed.

Envelopes encrypted with fewer iterations than the current default are
flagged as stale; re-encrypt them to upgrade.

Patterns are doublestar globs relative to the project root. The default
matches **/*.enc.json and **/*.enc.{js,cjs,mjs}.`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting inspect command")

	result, err := workflows.Inspect(cmd.Context(), workflows.InspectOptions{Patterns: args})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Envelopes) == 0 {
		fmt.Fprintln(out, "No envelope files found.")
		return nil
	}

	width := 0
	for _, info := range result.Envelopes {
		width = max(width, len(info.Path))
	}

	for _, info := range result.Envelopes {
		path := info.Path + strings.Repeat(" ", width-len(info.Path))
		switch {
		case info.Err != nil:
			fmt.Fprintf(out, "%s %s  %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(path), info.Err)
		case info.Stale:
			fmt.Fprintf(out, "%s %s  %s %s\n", ui.Warning.Sprint("⚠"), ui.Path.Sprint(path), info.Tag,
				ui.Muted.Sprintf("%d iterations, below %d", info.Iterations, secrets.DefaultIterations))
		default:
			fmt.Fprintf(out, "%s %s  %s %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(path), info.Tag,
				ui.Muted.Sprintf("%d iterations", info.Iterations))
		}
	}

	stale := result.Stale()
	if len(stale) > 0 {
		fmt.Fprintf(out, "%s %d stale %s; run %s to upgrade\n", ui.Info.Sprint("→"), len(stale),
			utils.Pluralize(len(stale), "envelope"), ui.Code.Sprint("gitops-secrets encrypt"))
		if inspectFailOnStale {
			return &exitCodeError{code: 1}
		}
	}
	return nil
}

func resetInspectState() {
	inspectFailOnStale = false
}
