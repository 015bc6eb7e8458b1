package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Provider is recorded as the default for fetch.
	Provider string

	// ModuleFormat is recorded as output.module_format.
	ModuleFormat secrets.ModuleFormat

	// Force overwrites an existing config file.
	Force bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	ConfigPath string
	Config     *configs.ProjectConfig
}

// Init writes a default .gitops-secrets.toml at the project root.
//
// Returns ErrAlreadyInitialized if the file exists and Force is not set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := configs.InitProjectSettings(); err != nil {
		return nil, fmt.Errorf("initializing project settings: %w", err)
	}

	configPath := configs.ProjectGitopsSettings.ConfigPath
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s exists", kerrors.ErrAlreadyInitialized, configPath)
	}

	config := configs.DefaultProjectConfig()
	config.Output.ModuleFormat = string(opts.ModuleFormat)
	config.Provider.Name = opts.Provider

	if err := configs.SaveProjectConfig(config); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{
		Operation: audit.OpInit,
		Path:      audit.RelPath(configPath),
		Provider:  opts.Provider,
	})

	return &InitResult{ConfigPath: configPath, Config: config}, nil
}
