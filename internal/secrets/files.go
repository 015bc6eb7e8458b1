package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
)

const (
	// SecretsFolder holds generated secrets files, relative to the project root.
	SecretsFolder = ".secrets"

	// DefaultFileName is the default encrypted JSON file.
	DefaultFileName = ".secrets.enc.json"

	// DefaultModuleName is the default generated JavaScript module.
	DefaultModuleName = ".secrets.enc.js"
)

var (
	// DefaultFilePath is relative to the project root.
	DefaultFilePath = filepath.Join(SecretsFolder, DefaultFileName)

	// DefaultModulePath is relative to the project root.
	DefaultModulePath = filepath.Join(SecretsFolder, DefaultModuleName)
)

// EncryptToFile encrypts payload and writes the envelope string to path.
// An empty path writes DefaultFilePath.
func EncryptToFile(c *Client, payload Payload, path string) (string, error) {
	if path == "" {
		path = DefaultFilePath
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}

	cipherText, err := c.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}
	if err := writeFile(path, cipherText); err != nil {
		return "", err
	}
	return path, nil
}

// DecryptFromFile reads an envelope from path and decrypts it. An empty path
// reads DefaultFilePath.
func DecryptFromFile(c *Client, path string) (Payload, error) {
	if path == "" {
		path = DefaultFilePath
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read secrets from %s: %w", path, err)
	}

	cipherText, err := ReadCipherTextFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read secrets from %s: %w", path, err)
	}

	payload, err := c.Decrypt(cipherText)
	if err != nil {
		return nil, fmt.Errorf("unable to read secrets from %s: %w", path, err)
	}
	return payload, nil
}

// ReadCipherTextFile returns the envelope stored in path without decrypting
// it. Both encrypted JSON files and generated modules are understood.
func ReadCipherTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return "", err
	}

	if IsModuleFile(path) {
		return ExtractCipherText(string(data))
	}
	return strings.TrimSpace(string(data)), nil
}

func writeFile(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		return fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}
	return nil
}
