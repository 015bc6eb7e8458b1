package secrets

import (
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"
)

// Client binds an Engine to a master key Guard. Every call reads the master
// key again, so a changed key takes effect on the next call.
type Client struct {
	guard  *masterkey.Guard
	engine *Engine
}

// NewClient returns a Client. Nil arguments fall back to the environment
// guard and an Engine with default options.
func NewClient(guard *masterkey.Guard, engine *Engine) *Client {
	if guard == nil {
		guard = masterkey.NewGuard(masterkey.EnvSource{})
	}
	if engine == nil {
		engine = New()
	}
	return &Client{guard: guard, engine: engine}
}

// DefaultClient reads GITOPS_SECRETS_MASTER_KEY and uses DefaultIterations.
func DefaultClient() *Client {
	return NewClient(nil, nil)
}

// MasterKey validates the configured master key without encrypting anything.
func (c *Client) MasterKey() ([]byte, error) {
	return c.guard.MasterKey()
}

// Engine returns the underlying engine.
func (c *Client) Engine() *Engine {
	return c.engine
}

// Encrypt encrypts payload under the current master key.
func (c *Client) Encrypt(payload Payload) (string, error) {
	key, err := c.guard.MasterKey()
	if err != nil {
		return "", err
	}
	defer clearBytes(key)

	return c.engine.Encrypt(payload, key)
}

// Decrypt decrypts cipherText under the current master key.
func (c *Client) Decrypt(cipherText string) (Payload, error) {
	key, err := c.guard.MasterKey()
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	return c.engine.Decrypt(cipherText, key)
}
