package doppler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/providers"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, token string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/v3/configs/config/secrets/download" || r.URL.Query().Get("format") != "json" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != token || pass != "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"messages":["Invalid Auth token"],"success":false}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"API_KEY":"abc","DOPPLER_PROJECT":"web","DOPPLER_CONFIG":"prd"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t, "dp.st.prd.valid", nil)

	p, err := New(WithToken("dp.st.prd.valid"), WithBaseURL(srv.URL), WithRetryMax(0))
	require.NoError(t, err)

	payload, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, secrets.Payload{"API_KEY": "abc", "DOPPLER_PROJECT": "web", "DOPPLER_CONFIG": "prd"}, payload)
}

func TestFetchTokenFromEnvironment(t *testing.T) {
	srv := newTestServer(t, "dp.st.env", nil)
	t.Setenv("DOPPLER_TOKEN", "dp.st.env")

	p, err := New(WithBaseURL(srv.URL), WithRetryMax(0))
	require.NoError(t, err)

	payload, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, payload, "DOPPLER_PROJECT")
}

func TestFetchFailsWithoutToken(t *testing.T) {
	var hits int32
	srv := newTestServer(t, "dp.st.prd.valid", &hits)
	t.Setenv("DOPPLER_TOKEN", "")

	p, err := New(WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = p.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Doppler API Error"))
	assert.ErrorIs(t, err, kerrors.ErrProviderRequest)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestFetchFailsWithInvalidToken(t *testing.T) {
	srv := newTestServer(t, "dp.st.prd.valid", nil)

	p, err := New(WithToken("XXXX"), WithBaseURL(srv.URL), WithRetryMax(0))
	require.NoError(t, err)

	_, err = p.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.ErrorIs(t, err, kerrors.ErrProviderRequest)
}

func TestFetchRejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer srv.Close()

	p, err := New(WithToken("token"), WithBaseURL(srv.URL), WithRetryMax(0))
	require.NoError(t, err)

	_, err = p.Fetch(context.Background())
	assert.ErrorIs(t, err, kerrors.ErrProviderRequest)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"API_KEY":"abc"}`))
	}))
	defer srv.Close()

	p, err := New(WithToken("token"), WithBaseURL(srv.URL), WithRetryMax(2))
	require.NoError(t, err)

	payload, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", payload["API_KEY"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, providers.Names(), Name)

	p, err := providers.Get(Name)
	require.NoError(t, err)
	assert.IsType(t, &Provider{}, p)

	_, err = providers.Get("vault")
	assert.ErrorIs(t, err, kerrors.ErrUnknownProvider)
}
