package secrets

import (
	"path/filepath"
	"regexp"
	"strings"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
)

var cipherTextPattern = regexp.MustCompile(`const\s+CIPHER_TEXT\s*=\s*"([^"]*)"`)

// IsModuleFile reports whether path looks like a generated JavaScript module.
func IsModuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return true
	default:
		return false
	}
}

// ExtractCipherText finds the CIPHER_TEXT constant in generated module source.
func ExtractCipherText(source string) (string, error) {
	m := cipherTextPattern.FindStringSubmatch(source)
	if m == nil {
		return "", kerrors.ErrCipherTextNotFound
	}
	return m[1], nil
}

// LoadModule decrypts the secrets embedded in a generated module. An empty
// path loads DefaultModulePath.
func LoadModule(c *Client, path string) (Payload, error) {
	if path == "" {
		path = DefaultModulePath
	}
	return DecryptFromFile(c, path)
}
