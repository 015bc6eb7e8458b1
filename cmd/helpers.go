package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/ui"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"

	"github.com/briandowns/spinner"
	"github.com/spf13/pflag"
)

// startSpinner shows a spinner on stderr unless verbose or debug output is
// on. The returned cleanup stops it and prints FinalMSG to out.
//
// FinalMSG does not need a trailing newline; cleanup adds one.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}
		if quiet {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// relPath shortens path for display when it is inside the project.
func relPath(path string) string {
	root := configs.ProjectGitopsSettings.ProjectPath
	if root == "" {
		return path
	}
	return utils.RelativeTo(root, path)
}

// moduleFormatValue is a --format flag accepting cjs or esm.
type moduleFormatValue struct {
	format *secrets.ModuleFormat
}

var _ pflag.Value = moduleFormatValue{}

func newModuleFormatValue(p *secrets.ModuleFormat) moduleFormatValue {
	return moduleFormatValue{format: p}
}

func (v moduleFormatValue) String() string {
	if v.format == nil {
		return ""
	}
	return string(*v.format)
}

func (v moduleFormatValue) Set(s string) error {
	format, err := secrets.ParseModuleFormat(s)
	if err != nil {
		return err
	}
	*v.format = format
	return nil
}

func (v moduleFormatValue) Type() string {
	return "cjs|esm"
}

// stdinOverride returns the command's input when a test or caller replaced
// it, and nil for the process stdin so it gets the terminal check.
func stdinOverride(r io.Reader) io.Reader {
	if r == os.Stdin {
		return nil
	}
	return r
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
