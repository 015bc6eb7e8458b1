package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"

	"github.com/caarlos0/env/v11"
)

// ModuleFormat is the JavaScript module system of a generated secrets module.
type ModuleFormat string

const (
	FormatAuto     ModuleFormat = ""
	FormatCommonJS ModuleFormat = "cjs"
	FormatESM      ModuleFormat = "esm"
)

// DefaultRuntime is the import specifier generated modules load secrets with.
const DefaultRuntime = "gitops-secrets/no-fs"

// ParseModuleFormat validates a user-supplied format name.
func ParseModuleFormat(s string) (ModuleFormat, error) {
	switch ModuleFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatAuto:
		return FormatAuto, nil
	case FormatCommonJS, "commonjs":
		return FormatCommonJS, nil
	case FormatESM, "module", "es":
		return FormatESM, nil
	default:
		return "", fmt.Errorf("%w: %q (expected cjs or esm)", kerrors.ErrInvalidModuleFormat, s)
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	// Path of the generated module. Empty writes DefaultModulePath.
	Path string

	// CipherTextOnly limits the module to exporting CIPHER_TEXT.
	CipherTextOnly bool

	// Format forces a module format. FormatAuto picks CommonJS for the default
	// path and otherwise follows PackageType.
	Format ModuleFormat

	// PackageType is the "type" of the consuming package ("module" or
	// "commonjs"). See DetectPackageType.
	PackageType string

	// Runtime overrides DefaultRuntime.
	Runtime string
}

// Build encrypts payload and writes it as a loadable JavaScript module.
// The absolute path of the written module is returned.
func Build(c *Client, payload Payload, opts BuildOptions) (string, error) {
	path, err := modulePath(opts.Path)
	if err != nil {
		return "", err
	}

	cipherText, err := c.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}
	return BuildFromCipherText(cipherText, opts)
}

// BuildFromCipherText writes an existing envelope as a JavaScript module.
// No master key is needed.
func BuildFromCipherText(cipherText string, opts BuildOptions) (string, error) {
	path, err := modulePath(opts.Path)
	if err != nil {
		return "", err
	}

	format := ResolveModuleFormat(opts.Format, opts.Path == "", opts.PackageType)
	source, err := RenderModule(cipherText, format, opts.CipherTextOnly, opts.Runtime)
	if err != nil {
		return "", err
	}
	if err := writeFile(path, source); err != nil {
		return "", err
	}
	return path, nil
}

func modulePath(path string) (string, error) {
	if path == "" {
		path = DefaultModulePath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}
	return abs, nil
}

// ResolveModuleFormat applies the format selection rules. The default module
// is always CommonJS because it is loaded with require by the tool's own
// runtime regardless of the consuming package's type.
func ResolveModuleFormat(requested ModuleFormat, defaultPath bool, packageType string) ModuleFormat {
	if requested != FormatAuto {
		return requested
	}
	if defaultPath {
		return FormatCommonJS
	}
	if packageType == "module" {
		return FormatESM
	}
	return FormatCommonJS
}

var moduleTemplate = template.Must(template.New("module").Parse(`/* eslint-disable */
// This file was auto-generated by gitops-secrets
{{- if eq .Format "esm" }}
{{- if not .CipherTextOnly }}
import secrets from "{{ .Runtime }}";
{{- end }}
const CIPHER_TEXT = "{{ .CipherText }}";
{{- if .CipherTextOnly }}
export { CIPHER_TEXT };
{{- else }}
const loadSecrets = () => secrets.loadSecretsFromCipher(CIPHER_TEXT);
export { CIPHER_TEXT, loadSecrets };
{{- end }}
{{- else }}
{{- if not .CipherTextOnly }}
const secrets = require("{{ .Runtime }}");
{{- end }}
const CIPHER_TEXT = "{{ .CipherText }}";
{{- if .CipherTextOnly }}
module.exports = { CIPHER_TEXT };
{{- else }}
const loadSecrets = () => secrets.loadSecretsFromCipher(CIPHER_TEXT);
module.exports = { CIPHER_TEXT, loadSecrets };
{{- end }}
{{- end }}`))

// RenderModule returns the module source embedding cipherText.
func RenderModule(cipherText string, format ModuleFormat, cipherTextOnly bool, runtime string) (string, error) {
	if format != FormatCommonJS && format != FormatESM {
		return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidModuleFormat, format)
	}
	if runtime == "" {
		runtime = DefaultRuntime
	}

	var b strings.Builder
	err := moduleTemplate.Execute(&b, struct {
		Format         ModuleFormat
		CipherTextOnly bool
		Runtime        string
		CipherText     string
	}{format, cipherTextOnly, runtime, cipherText})
	if err != nil {
		return "", fmt.Errorf("failed to render module: %w", err)
	}
	return b.String(), nil
}

type npmEnv struct {
	PackageType string `env:"npm_package_type"`
}

// DetectPackageType returns the consuming package's module type. The
// npm_package_type variable set by npm scripts wins; otherwise the "type"
// field of package.json in dir is used.
func DetectPackageType(dir string) string {
	if cfg, err := env.ParseAs[npmEnv](); err == nil && cfg.PackageType != "" {
		return cfg.PackageType
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	return pkg.Type
}
