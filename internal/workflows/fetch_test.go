package workflows

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/providers"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	payload secrets.Payload
	err     error
	calls   *atomic.Int32
}

func (p staticProvider) Fetch(context.Context) (secrets.Payload, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.payload, nil
}

var (
	staticCalls  atomic.Int32
	failingCalls atomic.Int32
)

func init() {
	providers.Register("static-test", func() (providers.Provider, error) {
		return staticProvider{
			payload: secrets.Payload{"DOPPLER_PROJECT": "web", "API_KEY": "abc"},
			calls:   &staticCalls,
		}, nil
	})
	providers.Register("failing-test", func() (providers.Provider, error) {
		return staticProvider{
			err:   errors.New("Doppler API Error: 401 Unauthorized"),
			calls: &failingCalls,
		}, nil
	})
}

func TestFetchToEnvelopeFile(t *testing.T) {
	root := setupProject(t)
	client := newTestClient(testMasterKey)

	res, err := Fetch(context.Background(), FetchOptions{Client: client, Provider: "static-test"})
	require.NoError(t, err)

	assert.Equal(t, "static-test", res.Provider)
	assert.Equal(t, filepath.Join(root, ".secrets", ".secrets.enc.json"), res.OutputPath)
	assert.False(t, res.Module)
	assert.Equal(t, []string{"API_KEY", "DOPPLER_PROJECT"}, res.Keys)

	payload, err := secrets.DecryptFromFile(client, res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "web", payload["DOPPLER_PROJECT"])

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OpFetch, entries[0].Operation)
	assert.Equal(t, "static-test", entries[0].Provider)
}

func TestFetchToModuleUsesConfiguredProvider(t *testing.T) {
	root := setupProject(t)
	writeFile(t, filepath.Join(root, ".gitops-secrets.toml"), "[provider]\nname = \"static-test\"\n")
	client := newTestClient(testMasterKey)

	res, err := Fetch(context.Background(), FetchOptions{Client: client, Module: true})
	require.NoError(t, err)
	assert.True(t, res.Module)
	assert.Equal(t, filepath.Join(root, ".secrets", ".secrets.enc.js"), res.OutputPath)
	assert.Equal(t, secrets.FormatCommonJS, res.Format)

	payload, err := secrets.LoadModule(client, res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload["API_KEY"])
}

func TestFetchErrors(t *testing.T) {
	setupProject(t)
	client := newTestClient(testMasterKey)

	_, err := Fetch(context.Background(), FetchOptions{Client: client})
	assert.ErrorIs(t, err, kerrors.ErrUnknownProvider)

	_, err = Fetch(context.Background(), FetchOptions{Client: client, Provider: "missing"})
	assert.ErrorIs(t, err, kerrors.ErrUnknownProvider)

	_, err = Fetch(context.Background(), FetchOptions{Client: client, Provider: "failing-test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Doppler API Error")
}

func TestFetchValidatesKeyBeforeCallingProvider(t *testing.T) {
	setupProject(t)
	before := staticCalls.Load()

	_, err := Fetch(context.Background(), FetchOptions{Client: newTestClient("short"), Provider: "static-test"})
	assert.ErrorIs(t, err, kerrors.ErrConfiguration)
	assert.Equal(t, before, staticCalls.Load())
}
