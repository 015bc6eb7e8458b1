package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/stretchr/testify/require"
)

const (
	testMasterKey  = "1e18cc54-1d77-45a1-ae46-fecebce35ae2"
	otherMasterKey = "9b2f0c8e-4a3d-4f11-8c57-0d6a2e7b91aa"
	testIterations = 1000
)

func newTestClient(key string) *secrets.Client {
	return secrets.NewClient(
		masterkey.NewGuard(masterkey.Static(key)),
		secrets.New(secrets.WithIterations(testIterations)),
	)
}

// setupProject creates a project root marked by a .git directory and makes it
// the working directory for the test.
func setupProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))

	original := configs.ProjectGitopsSettings
	t.Cleanup(func() {
		configs.ProjectGitopsSettings = original
		_ = os.Chdir(wd)
	})

	t.Setenv("npm_package_type", "")

	resolved, err := os.Getwd()
	require.NoError(t, err)
	return resolved
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
