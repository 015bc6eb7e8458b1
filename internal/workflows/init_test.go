package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	root := setupProject(t)

	res, err := Init(context.Background(), InitOptions{Provider: "doppler", ModuleFormat: secrets.FormatESM})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, configs.FileName), res.ConfigPath)

	loaded, err := configs.LoadProjectConfigFrom(res.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "doppler", loaded.Provider.Name)
	assert.Equal(t, "esm", loaded.Output.ModuleFormat)
	assert.Equal(t, configs.DefaultFile, loaded.Output.File)

	_, err = Init(context.Background(), InitOptions{})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyInitialized)

	_, err = Init(context.Background(), InitOptions{Force: true})
	require.NoError(t, err)
	loaded, err = configs.LoadProjectConfigFrom(res.ConfigPath)
	require.NoError(t, err)
	assert.Empty(t, loaded.Provider.Name)
}
