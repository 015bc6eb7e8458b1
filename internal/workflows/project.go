package workflows

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
	"github.com/PolarWolf314/gitops-secrets/internal/utils"
)

// project is the resolved root and configuration every workflow runs against.
type project struct {
	root   string
	config *configs.ProjectConfig
}

func loadProject() (*project, error) {
	if err := configs.InitProjectSettings(); err != nil {
		return nil, fmt.Errorf("initializing project settings: %w", err)
	}

	config, err := configs.LoadProjectConfig()
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &project{
		root:   configs.ProjectGitopsSettings.ProjectPath,
		config: config,
	}, nil
}

// filePath returns override when set, else the configured envelope path.
func (p *project) filePath(override string) string {
	if override != "" {
		return override
	}
	return p.config.FilePath(p.root)
}

func clientOrDefault(c *secrets.Client) *secrets.Client {
	if c == nil {
		return secrets.DefaultClient()
	}
	return c
}

// readPayload loads a plaintext payload from input, or from stdin when input
// is empty or "-".
func readPayload(input string, stdin io.Reader, format secrets.InputFormat) (secrets.Payload, error) {
	if input != "" && input != "-" {
		return secrets.ReadPayloadFile(input, format)
	}

	if stdin == nil {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		stdin = bytes.NewReader(data)
	}
	return secrets.ReadPayload(stdin, format)
}
