// Package shared contains testing utilities shared between integration tests.
package shared

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/cmd"
	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
)

// SetupTestProject creates a git-marked project directory, makes it the
// working directory and sets the master key. The original state is restored
// on cleanup.
func SetupTestProject(t *testing.T, masterKey string) string {
	t.Helper()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	originalSettings := configs.ProjectGitopsSettings
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.ProjectGitopsSettings = originalSettings
		cmd.ResetGlobalState()
	})

	t.Setenv("NO_COLOR", "1")
	t.Setenv("npm_package_type", "")
	t.Setenv(masterkey.EnvVar, masterKey)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

// RunCLI runs gitops-secrets with args and stdin, returning stdout, stderr
// and the exit code.
func RunCLI(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd.ResetGlobalState()

	var stdout, stderr bytes.Buffer
	cmd.RootCmd.SetArgs(args)
	cmd.RootCmd.SetOut(&stdout)
	cmd.RootCmd.SetErr(&stderr)
	cmd.RootCmd.SetIn(strings.NewReader(stdin))
	defer func() {
		cmd.RootCmd.SetArgs(nil)
		cmd.RootCmd.SetOut(nil)
		cmd.RootCmd.SetErr(nil)
		cmd.RootCmd.SetIn(nil)
	}()

	code := cmd.Execute(context.Background())
	return stdout.String(), stderr.String(), code
}

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
