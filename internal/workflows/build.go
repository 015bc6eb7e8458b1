package workflows

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/configs"
	"github.com/PolarWolf314/gitops-secrets/internal/envelope"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// BuildOptions configures the build workflow.
type BuildOptions struct {
	// Client performs the encryption. Nil uses the environment master key.
	Client *secrets.Client

	// Input is a plaintext payload file, or "-" for Stdin. Empty embeds the
	// project's existing envelope file without decrypting it.
	Input string

	// Stdin overrides os.Stdin when Input is "-".
	Stdin io.Reader

	InputFormat secrets.InputFormat

	// Path of the generated module. Empty uses the configured module path.
	Path string

	// Format forces the module format. Empty falls back to the project
	// config, then to automatic selection.
	Format secrets.ModuleFormat

	// CipherTextOnly omits the loader. The project config can also enable it.
	CipherTextOnly bool
}

// BuildResult contains the outcome of a build operation.
type BuildResult struct {
	ModulePath string
	Format     secrets.ModuleFormat

	// Keys is empty when an existing envelope was embedded.
	Keys       []string
	Iterations int
}

// Build generates a JavaScript module that embeds an envelope.
//
// Returns ErrFileNotFound when Input is empty and the project has no
// envelope file yet.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	var (
		cipherText string
		keys       []string
	)

	if opts.Input == "" {
		cipherText, err = secrets.ReadCipherTextFile(proj.config.FilePath(proj.root))
		if err != nil {
			return nil, err
		}
		if _, err := envelope.Parse(cipherText); err != nil {
			return nil, err
		}
	} else {
		payload, err := readPayload(opts.Input, opts.Stdin, opts.InputFormat)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cipherText, err = clientOrDefault(opts.Client).Encrypt(payload)
		if err != nil {
			return nil, err
		}
		keys = payload.Keys()
	}

	return writeModule(proj, cipherText, keys, opts.Path, opts.Format, opts.CipherTextOnly, audit.OpBuild, "")
}

// writeModule renders cipherText to the module path chosen by override and
// the project config, then records op in the audit log.
func writeModule(proj *project, cipherText string, keys []string, override string, format secrets.ModuleFormat, cipherTextOnly bool, op, provider string) (*BuildResult, error) {
	path := override
	if path == "" {
		path = proj.config.ModulePath(proj.root)
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to write secrets to %s: %w", path, err)
	}

	if format == secrets.FormatAuto {
		format = secrets.ModuleFormat(proj.config.Output.ModuleFormat)
	}
	isDefault := override == "" && proj.config.Output.Module == configs.DefaultModule
	format = secrets.ResolveModuleFormat(format, isDefault, secrets.DetectPackageType(proj.root))

	written, err := secrets.BuildFromCipherText(cipherText, secrets.BuildOptions{
		Path:           path,
		Format:         format,
		CipherTextOnly: cipherTextOnly || proj.config.Output.CipherTextOnly,
	})
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		ModulePath: written,
		Format:     format,
		Keys:       keys,
	}
	entry := audit.Entry{
		Operation: op,
		Path:      audit.RelPath(written),
		KeysCount: len(keys),
		Format:    string(format),
		Provider:  provider,
	}
	if env, err := envelope.Parse(cipherText); err == nil {
		result.Iterations = env.Iterations
		entry.Tag = string(env.Tag)
		entry.Iterations = env.Iterations
	}
	audit.Log(entry)

	return result, nil
}
