package masterkey

import (
	"fmt"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"

	"github.com/caarlos0/env/v11"
)

const (
	// EnvVar is the environment variable holding the master key.
	EnvVar = "GITOPS_SECRETS_MASTER_KEY"

	// MinLength is the minimum master key length in characters.
	MinLength = 16
)

// Source supplies the raw master key value. An empty string means the key is
// not configured.
type Source interface {
	Lookup() (string, error)
}

type envConfig struct {
	MasterKey string `env:"GITOPS_SECRETS_MASTER_KEY"`
}

// EnvSource reads the master key from the process environment on every call.
type EnvSource struct{}

func (EnvSource) Lookup() (string, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return "", fmt.Errorf("reading environment: %w", err)
	}
	return cfg.MasterKey, nil
}

// Static is a fixed master key value.
type Static string

func (s Static) Lookup() (string, error) {
	return string(s), nil
}

// Guard validates the value returned by its Source.
type Guard struct {
	source Source
}

// NewGuard returns a Guard reading from source. A nil source reads the environment.
func NewGuard(source Source) *Guard {
	if source == nil {
		source = EnvSource{}
	}
	return &Guard{source: source}
}

// MasterKey reads and validates the master key. It fails with a
// ConfigurationError when the key is absent, empty or too short.
func (g *Guard) MasterKey() ([]byte, error) {
	value, err := g.source.Lookup()
	if err != nil {
		return nil, &kerrors.ConfigurationError{Reason: err.Error()}
	}
	if value == "" {
		return nil, &kerrors.ConfigurationError{Reason: EnvVar + " is not set"}
	}

	key := []byte(value)
	if err := Validate(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Validate checks the minimum length of key.
func Validate(key []byte) error {
	if len(key) == 0 {
		return &kerrors.ConfigurationError{Reason: "master key is empty"}
	}
	if n := utf8.RuneCount(key); n < MinLength {
		return &kerrors.ConfigurationError{
			Reason: fmt.Sprintf("master key must be at least %d characters, got %d", MinLength, n),
		}
	}
	return nil
}

// MasterKey reads the master key from the environment. Callers use it to fail
// fast on misconfiguration before doing any I/O.
func MasterKey() ([]byte, error) {
	return NewGuard(EnvSource{}).MasterKey()
}
