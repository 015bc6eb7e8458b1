package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log kept in .secrets/audit.jsonl.

Entries record the operation, file, envelope parameters and number of keys.
Secret values are never logged.

Examples:
  gitops-secrets log                              # View full log
  gitops-secrets log -n 10                        # Last 10 entries
  gitops-secrets log --reverse                    # Most recent first
  gitops-secrets log --operation encrypt,fetch    # Filter by operation
  gitops-secrets log --since 2024-01-01           # Filter by date
  gitops-secrets log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Showing %d of %d entries", len(result.Entries), result.Total)

	out := cmd.OutOrStdout()
	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.Total == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
		} else {
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Fprintf(out, "%-19s  %-8s  %s\n", formatDateTime(e.Timestamp), e.Operation, formatDetails(e))
	}
	return nil
}

func outputLogJSON(out io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func formatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDetails(e audit.Entry) string {
	details := e.Path
	if e.Provider != "" {
		details += " from " + e.Provider
	}
	if e.Command != "" {
		details += " for " + e.Command
	}
	if e.Iterations > 0 {
		details += fmt.Sprintf(" (%s, %d iterations", e.Tag, e.Iterations)
		if e.KeysCount > 0 {
			details += fmt.Sprintf(", %d keys", e.KeysCount)
		}
		details += ")"
	} else if e.KeysCount > 0 {
		details += fmt.Sprintf(" (%d keys)", e.KeysCount)
	}
	return details
}
