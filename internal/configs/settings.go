package configs

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"
)

type ProjectSettings struct {
	ProjectName        string
	ProjectPath        string
	ProjectSecretsPath string
	ConfigPath         string
}

// ProjectGitopsSettings is empty until InitProjectSettings runs.
var ProjectGitopsSettings = &ProjectSettings{}

// InitProjectSettings discovers the project root from the working directory.
func InitProjectSettings() error {
	return InitProjectSettingsFrom("")
}

// InitProjectSettingsFrom discovers the project root from dir.
func InitProjectSettingsFrom(dir string) error {
	projectPath, err := utils.FindProjectRoot(dir)
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	ProjectGitopsSettings = &ProjectSettings{
		ProjectName:        filepath.Base(projectPath),
		ProjectPath:        projectPath,
		ProjectSecretsPath: filepath.Join(projectPath, secrets.SecretsFolder),
		ConfigPath:         filepath.Join(projectPath, FileName),
	}

	return nil
}
