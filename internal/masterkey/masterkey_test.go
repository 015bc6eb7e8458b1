package masterkey

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMasterKey = "1e18cc54-1d77-45a1-ae46-fecebce35ae2"

func TestMasterKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvVar, testMasterKey)

	key, err := MasterKey()
	require.NoError(t, err)
	assert.Equal(t, []byte(testMasterKey), key)
}

func TestMasterKeyMissing(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := MasterKey()
	require.Error(t, err)
	assert.ErrorIs(t, err, kerrors.ErrConfiguration)

	var ce *kerrors.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Reason, EnvVar)
}

func TestMasterKeyTooShort(t *testing.T) {
	t.Setenv(EnvVar, "6791f8e3")

	_, err := MasterKey()
	assert.ErrorIs(t, err, kerrors.ErrConfiguration)
}

func TestMasterKeyReadOnEveryCall(t *testing.T) {
	guard := NewGuard(nil)

	t.Setenv(EnvVar, testMasterKey)
	first, err := guard.MasterKey()
	require.NoError(t, err)

	t.Setenv(EnvVar, "0123456789abcdef-rotated")
	second, err := guard.MasterKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, []byte("0123456789abcdef-rotated"), second)
}

type failingSource struct{}

func (failingSource) Lookup() (string, error) {
	return "", errors.New("vault unreachable")
}

func TestGuardSourceFailure(t *testing.T) {
	_, err := NewGuard(failingSource{}).MasterKey()
	assert.ErrorIs(t, err, kerrors.ErrConfiguration)
	assert.Contains(t, err.Error(), "vault unreachable")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty", "", true},
		{"eight characters", "6791f8e3", true},
		{"fifteen characters", "abcdefghijklmno", true},
		{"sixteen characters", "abcdefghijklmnop", false},
		{"uuid", testMasterKey, false},
		{"multibyte counted as characters", "ключключключключ", false},
		{"multibyte too short", "ключ-ключ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.key))
			if tt.wantErr {
				assert.ErrorIs(t, err, kerrors.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStaticSource(t *testing.T) {
	key, err := NewGuard(Static(testMasterKey)).MasterKey()
	require.NoError(t, err)
	assert.Equal(t, testMasterKey, string(key))
}
