package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// FileName is the project configuration file looked up at the project root.
const FileName = ".gitops-secrets.toml"

// Default output locations, relative to the project root.
var (
	DefaultFile   = secrets.DefaultFilePath
	DefaultModule = secrets.DefaultModulePath
)

// ProjectConfig is the contents of .gitops-secrets.toml.
type ProjectConfig struct {
	Output   Output   `toml:"output"`
	Provider Provider `toml:"provider"`
}

// Output controls where envelopes and generated modules are written.
type Output struct {
	File           string `toml:"file"`
	Module         string `toml:"module"`
	ModuleFormat   string `toml:"module_format"`
	CipherTextOnly bool   `toml:"cipher_text_only"`
}

// Provider names the default secrets provider for fetch.
type Provider struct {
	Name string `toml:"name"`
}

// GlobalProjectConfig is set by LoadProjectConfig on success.
var GlobalProjectConfig *ProjectConfig

// DefaultProjectConfig returns the configuration used when no file exists.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Output: Output{
			File:   DefaultFile,
			Module: DefaultModule,
		},
	}
}

// LoadProjectConfig reads the config file in the current project root.
// A missing file yields the defaults.
func LoadProjectConfig() (*ProjectConfig, error) {
	root := ProjectGitopsSettings.ProjectPath
	if root == "" {
		return nil, fmt.Errorf("%w: project settings not initialized", kerrors.ErrConfiguration)
	}

	config, err := LoadProjectConfigFrom(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	GlobalProjectConfig = config
	return config, nil
}

// LoadProjectConfigFrom reads a config file at path, filling unset fields
// with defaults.
func LoadProjectConfigFrom(path string) (*ProjectConfig, error) {
	config := DefaultProjectConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, &kerrors.ConfigurationError{Reason: fmt.Sprintf("failed to load %s: %v", path, err)}
	}

	if config.Output.File == "" {
		config.Output.File = DefaultFile
	}
	if config.Output.Module == "" {
		config.Output.Module = DefaultModule
	}

	switch config.Output.ModuleFormat {
	case "", "cjs", "esm":
	default:
		return nil, &kerrors.ConfigurationError{
			Reason: fmt.Sprintf("%s: output.module_format must be \"cjs\" or \"esm\", got %q", path, config.Output.ModuleFormat),
		}
	}

	return config, nil
}

// SaveProjectConfig writes config to the project root.
func SaveProjectConfig(config *ProjectConfig) error {
	root := ProjectGitopsSettings.ProjectPath
	if root == "" {
		return fmt.Errorf("%w: project settings not initialized", kerrors.ErrConfiguration)
	}

	if err := SaveTOML(filepath.Join(root, FileName), config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}
	return nil
}

// FilePath resolves the envelope output path against root.
func (c *ProjectConfig) FilePath(root string) string {
	return resolve(root, c.Output.File, DefaultFile)
}

// ModulePath resolves the module output path against root.
func (c *ProjectConfig) ModulePath(root string) string {
	return resolve(root, c.Output.Module, DefaultModule)
}

func resolve(root, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
