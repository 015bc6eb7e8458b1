package configs

import (
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withProjectSettings(t *testing.T, dir string) {
	t.Helper()
	original := ProjectGitopsSettings
	t.Cleanup(func() { ProjectGitopsSettings = original })
	require.NoError(t, InitProjectSettingsFrom(dir))
}

func TestLoadProjectConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadProjectConfigFrom(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectConfig(), config)
}

func TestLoadProjectConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[output]
module = "src/secrets.js"
module_format = "esm"
cipher_text_only = true

[provider]
name = "doppler"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	config, err := LoadProjectConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultFile, config.Output.File)
	assert.Equal(t, "src/secrets.js", config.Output.Module)
	assert.Equal(t, "esm", config.Output.ModuleFormat)
	assert.True(t, config.Output.CipherTextOnly)
	assert.Equal(t, "doppler", config.Provider.Name)
}

func TestLoadProjectConfigRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "[output\nfile ="},
		{"unknown key", "[output]\npath = \"x\"\n"},
		{"bad module format", "[output]\nmodule_format = \"amd\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadProjectConfigFrom(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, kerrors.ErrConfiguration)
		})
	}
}

func TestSaveAndLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), nil, 0600))
	withProjectSettings(t, dir)

	config := DefaultProjectConfig()
	config.Output.ModuleFormat = "cjs"
	config.Provider.Name = "doppler"
	require.NoError(t, SaveProjectConfig(config))

	loaded, err := LoadProjectConfig()
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
	assert.Same(t, loaded, GlobalProjectConfig)
}

func TestLoadProjectConfigRequiresSettings(t *testing.T) {
	original := ProjectGitopsSettings
	t.Cleanup(func() { ProjectGitopsSettings = original })
	ProjectGitopsSettings = &ProjectSettings{}

	_, err := LoadProjectConfig()
	assert.ErrorIs(t, err, kerrors.ErrConfiguration)
	assert.ErrorIs(t, SaveProjectConfig(DefaultProjectConfig()), kerrors.ErrConfiguration)
}

func TestResolvePaths(t *testing.T) {
	root := filepath.FromSlash("/work/app")
	config := DefaultProjectConfig()

	assert.Equal(t, filepath.Join(root, ".secrets", ".secrets.enc.json"), config.FilePath(root))
	assert.Equal(t, filepath.Join(root, ".secrets", ".secrets.enc.js"), config.ModulePath(root))

	abs := filepath.Join(t.TempDir(), "out.json")
	config.Output.File = abs
	assert.Equal(t, abs, config.FilePath(root))

	config.Output.Module = ""
	assert.Equal(t, filepath.Join(root, DefaultModule), config.ModulePath(root))
}
