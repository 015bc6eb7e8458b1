package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/PolarWolf314/gitops-secrets/internal/envelope"
	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for newly written envelopes.
	// Existing envelopes keep the count recorded in them.
	DefaultIterations = 1000000

	// SaltSize is the length of the random salt in new envelopes.
	SaltSize = 16

	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12

	// KeySize is the derived key length (AES-256).
	KeySize = 32
)

// Engine encrypts payloads into envelopes and back. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	iterations int
	random     io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithIterations sets the work factor used for new envelopes. Values below 1
// are ignored.
func WithIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.iterations = n
		}
	}
}

// WithRandom sets the randomness source for salts and nonces. The reader
// must be safe for concurrent use if the engine is shared.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// New returns an Engine using DefaultIterations and crypto/rand.
func New(opts ...Option) *Engine {
	e := &Engine{
		iterations: DefaultIterations,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Iterations returns the work factor used for new envelopes.
func (e *Engine) Iterations() int {
	return e.iterations
}

// Encrypt serializes payload as JSON and seals it under a key derived from
// masterKey and a fresh salt.
func (e *Engine) Encrypt(payload Payload, masterKey []byte) (string, error) {
	if err := masterkey.Validate(masterKey); err != nil {
		return "", err
	}
	if payload == nil {
		payload = Payload{}
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(e.random, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := deriveKey(masterKey, salt, e.iterations)
	defer clearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	clearBytes(plaintext)

	return envelope.Format(envelope.TagBase64, e.iterations, salt, nonce, ciphertext), nil
}

// Decrypt parses cipherText, re-derives the key with the envelope's own salt
// and iteration count, and verifies and decodes the payload.
//
// Malformed input fails with a FormatError. A wrong key, tampered cipher
// text or a plaintext that is not a JSON object all fail with the same
// DecryptionError.
func (e *Engine) Decrypt(cipherText string, masterKey []byte) (Payload, error) {
	if err := masterkey.Validate(masterKey); err != nil {
		return nil, err
	}

	env, err := envelope.Parse(cipherText)
	if err != nil {
		// A re-spelled ciphertext segment is altered authenticated data.
		var ferr *kerrors.FormatError
		if errors.As(err, &ferr) && ferr.Field == "ciphertext" && errors.Is(err, envelope.ErrNonCanonical) {
			return nil, &kerrors.DecryptionError{}
		}
		return nil, err
	}
	if len(env.IV) != NonceSize {
		return nil, &kerrors.FormatError{Field: "iv", Reason: fmt.Sprintf("expected %d bytes, got %d", NonceSize, len(env.IV))}
	}

	key := deriveKey(masterKey, env.Salt, env.Iterations)
	defer clearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, env.IV, env.Ciphertext, nil)
	if err != nil {
		return nil, &kerrors.DecryptionError{}
	}
	defer clearBytes(plaintext)

	payload, err := decodePayload(plaintext)
	if err != nil || payload == nil {
		return nil, &kerrors.DecryptionError{}
	}
	return payload, nil
}

// deriveKey runs PBKDF2-HMAC-SHA256. The caller clears the result.
func deriveKey(masterKey, salt []byte, iterations int) []byte {
	return pbkdf2.Key(masterKey, salt, iterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// clearBytes zeros b so key material does not outlive the call.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
