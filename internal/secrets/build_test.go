package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderModule(t *testing.T) {
	const ct = "base64:1:AA==:AA==:AA=="

	tests := []struct {
		name           string
		format         ModuleFormat
		cipherTextOnly bool
		want           []string
	}{
		{"commonjs", FormatCommonJS, false, []string{
			"/* eslint-disable */",
			"// This file was auto-generated by gitops-secrets",
			`const secrets = require("gitops-secrets/no-fs");`,
			`const CIPHER_TEXT = "` + ct + `";`,
			"const loadSecrets = () => secrets.loadSecretsFromCipher(CIPHER_TEXT);",
			"module.exports = { CIPHER_TEXT, loadSecrets };",
		}},
		{"commonjs cipher text only", FormatCommonJS, true, []string{
			"/* eslint-disable */",
			"// This file was auto-generated by gitops-secrets",
			`const CIPHER_TEXT = "` + ct + `";`,
			"module.exports = { CIPHER_TEXT };",
		}},
		{"esm", FormatESM, false, []string{
			"/* eslint-disable */",
			"// This file was auto-generated by gitops-secrets",
			`import secrets from "gitops-secrets/no-fs";`,
			`const CIPHER_TEXT = "` + ct + `";`,
			"const loadSecrets = () => secrets.loadSecretsFromCipher(CIPHER_TEXT);",
			"export { CIPHER_TEXT, loadSecrets };",
		}},
		{"esm cipher text only", FormatESM, true, []string{
			"/* eslint-disable */",
			"// This file was auto-generated by gitops-secrets",
			`const CIPHER_TEXT = "` + ct + `";`,
			"export { CIPHER_TEXT };",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderModule(ct, tt.format, tt.cipherTextOnly, "")
			require.NoError(t, err)
			assert.Equal(t, strings.Join(tt.want, "\n"), got)
		})
	}
}

func TestRenderModuleCustomRuntime(t *testing.T) {
	got, err := RenderModule("base64:1:AA==:AA==:AA==", FormatESM, false, "@acme/secrets")
	require.NoError(t, err)
	assert.Contains(t, got, `import secrets from "@acme/secrets";`)
}

func TestRenderModuleInvalidFormat(t *testing.T) {
	_, err := RenderModule("x", ModuleFormat("umd"), false, "")
	assert.ErrorIs(t, err, kerrors.ErrInvalidModuleFormat)
}

func TestParseModuleFormat(t *testing.T) {
	tests := map[string]ModuleFormat{
		"":         FormatAuto,
		"cjs":      FormatCommonJS,
		"CommonJS": FormatCommonJS,
		"esm":      FormatESM,
		"module":   FormatESM,
	}
	for in, want := range tests {
		got, err := ParseModuleFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseModuleFormat("amd")
	assert.ErrorIs(t, err, kerrors.ErrInvalidModuleFormat)
}

func TestResolveModuleFormat(t *testing.T) {
	// The default module is CommonJS even in ES module packages.
	assert.Equal(t, FormatCommonJS, ResolveModuleFormat(FormatAuto, true, "module"))
	assert.Equal(t, FormatESM, ResolveModuleFormat(FormatAuto, false, "module"))
	assert.Equal(t, FormatCommonJS, ResolveModuleFormat(FormatAuto, false, ""))
	assert.Equal(t, FormatESM, ResolveModuleFormat(FormatESM, true, ""))
}

func TestBuildAndLoadModule(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	client := newTestClient()

	written, err := Build(client, legacySecrets, BuildOptions{PackageType: "module"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(written, filepath.Join(".secrets", ".secrets.enc.js")))

	source, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Contains(t, string(source), "module.exports")
	assert.Contains(t, string(source), "loadSecrets")

	payload, err := LoadModule(client, "")
	require.NoError(t, err)
	assert.Equal(t, legacySecrets, payload)
}

func TestBuildCustomPathFollowsPackageType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".secrets", "custom.enc.js")
	client := newTestClient()

	_, err := Build(client, legacySecrets, BuildOptions{Path: path, PackageType: "module"})
	require.NoError(t, err)
	source, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(source), "export {")

	_, err = Build(client, legacySecrets, BuildOptions{Path: path, CipherTextOnly: true})
	require.NoError(t, err)
	source, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(source), "module.exports = { CIPHER_TEXT };")
	assert.NotContains(t, string(source), "loadSecrets")

	payload, err := LoadModule(client, path)
	require.NoError(t, err)
	assert.Equal(t, legacySecrets, payload)
}

func TestBuildFromCipherTextNeedsNoKey(t *testing.T) {
	t.Setenv("GITOPS_SECRETS_MASTER_KEY", "")
	path := filepath.Join(t.TempDir(), "legacy.enc.mjs")

	_, err := BuildFromCipherText(legacyCipherText, BuildOptions{Path: path, Format: FormatESM})
	require.NoError(t, err)

	source, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(source), `const CIPHER_TEXT = "`+legacyCipherText+`";`)

	payload, err := LoadModule(newTestClient(), path)
	require.NoError(t, err)
	assert.Equal(t, legacySecrets, payload)
}

func TestExtractCipherTextMissing(t *testing.T) {
	_, err := ExtractCipherText("module.exports = {};")
	assert.ErrorIs(t, err, kerrors.ErrCipherTextNotFound)
}

func TestDetectPackageType(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("npm_package_type", "")
	assert.Equal(t, "", DetectPackageType(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"app","type":"module"}`), 0600))
	assert.Equal(t, "module", DetectPackageType(dir))

	t.Setenv("npm_package_type", "commonjs")
	assert.Equal(t, "commonjs", DetectPackageType(dir))
}
