package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a cryptographic failure.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = iota
	KindConfiguration
	KindFormat
	KindDecryption
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindFormat:
		return "format"
	case KindDecryption:
		return "decryption"
	default:
		return "unknown"
	}
}

// Sentinels matched by the typed errors below.
var (
	// ErrConfiguration indicates the master key is missing or too short.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrFormat indicates a malformed envelope string.
	ErrFormat = errors.New("malformed cipher text")

	// ErrDecryption indicates the envelope could not be authenticated or decoded.
	ErrDecryption = errors.New("unable to decrypt secrets")
)

// File errors indicate issues with reading or writing secret files.
var (
	// ErrFileNotFound indicates a secrets file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrCipherTextNotFound indicates a generated module has no CIPHER_TEXT export.
	ErrCipherTextNotFound = errors.New("cipher text not found in module")

	// ErrInvalidModuleFormat indicates an unsupported module format was requested.
	ErrInvalidModuleFormat = errors.New("invalid module format")

	// ErrInvalidPayload indicates the input could not be read as a mapping of secrets.
	ErrInvalidPayload = errors.New("invalid secrets payload")

	// ErrAlreadyInitialized indicates the project config file already exists.
	ErrAlreadyInitialized = errors.New("project already initialized")
)

// Provider errors indicate failures fetching secrets from a third party.
var (
	// ErrUnknownProvider indicates no provider is registered under the given name.
	ErrUnknownProvider = errors.New("unknown secrets provider")

	// ErrProviderRequest indicates the provider API rejected or failed the request.
	ErrProviderRequest = errors.New("secrets provider request failed")
)

// ConfigurationError reports a missing or unusable master key.
type ConfigurationError struct {
	// Reason describes what is wrong, e.g. "GITOPS_SECRETS_MASTER_KEY is not set".
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// FormatError reports a structurally invalid envelope.
type FormatError struct {
	// Field names the envelope segment at fault ("tag", "iterations", "salt",
	// "iv", "ciphertext") or "envelope" for arity problems.
	Field string

	// Reason is a short human readable description.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrFormat, e.Field, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// DecryptionError reports an authentication or deserialization failure.
// It intentionally carries no detail about which stage failed.
type DecryptionError struct{}

func (e *DecryptionError) Error() string {
	return ErrDecryption.Error() + ": wrong master key or corrupted cipher text"
}

func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrDecryption):
		return KindDecryption
	default:
		return KindUnknown
	}
}
