package workflows

import (
	"context"
	"path/filepath"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Client performs the decryption. Nil uses the environment master key.
	Client *secrets.Client

	// Path is an envelope file or generated module. Empty uses the project's
	// configured envelope path.
	Path string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	Payload secrets.Payload
	Path    string
}

// Decrypt reads an envelope file and returns its payload.
//
// Returns ErrFileNotFound if the file does not exist.
// Returns ErrFormat if the envelope is malformed and ErrDecryption if the
// master key is wrong or the envelope was altered.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(proj.filePath(opts.Path))
	if err != nil {
		return nil, err
	}

	payload, err := secrets.DecryptFromFile(clientOrDefault(opts.Client), path)
	if err != nil {
		return nil, err
	}

	entry := audit.Entry{
		Operation: audit.OpDecrypt,
		Path:      audit.RelPath(path),
		KeysCount: len(payload),
	}
	if info := inspectFile(path); info.Err == nil {
		entry.Tag = string(info.Tag)
		entry.Iterations = info.Iterations
	}
	audit.Log(entry)

	return &DecryptResult{Payload: payload, Path: path}, nil
}
