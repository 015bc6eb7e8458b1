package configs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.toml")

	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	original := section{Name: "api", Count: 3}

	require.NoError(t, SaveTOML(path, original))

	var loaded section
	require.NoError(t, LoadTOML(path, &loaded))
	assert.Equal(t, original, loaded)
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data struct{ Name string }
	assert.Error(t, LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data))
}
