package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

const testMasterKey = "1e18cc54-1d77-45a1-ae46-fecebce35ae2"

// setupTestProject creates a project root with a .git marker, makes it the
// working directory and sets a master key. Returns the root.
func setupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))

	originalSettings := configs.ProjectGitopsSettings
	originalNoColor := color.NoColor
	color.NoColor = true
	engineOptions = []secrets.Option{secrets.WithIterations(1000)}

	t.Cleanup(func() {
		_ = os.Chdir(wd)
		configs.ProjectGitopsSettings = originalSettings
		color.NoColor = originalNoColor
		engineOptions = nil
		ResetGlobalState()
	})

	t.Setenv("NO_COLOR", "1")
	t.Setenv("npm_package_type", "")
	t.Setenv(masterkey.EnvVar, testMasterKey)

	resolved, err := os.Getwd()
	require.NoError(t, err)
	return resolved
}

// runCLI executes the root command with args and returns its output and
// exit code.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	var in io.Reader = strings.NewReader(stdin)
	RootCmd.SetIn(in)
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
	})

	code := Execute(context.Background())
	return stdout.String(), stderr.String(), code
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}
