package workflows

import (
	"context"
	"io"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/envelope"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Client performs the encryption. Nil uses the environment master key.
	Client *secrets.Client

	// Input is the plaintext payload file. Empty or "-" reads Stdin.
	Input string

	// Stdin overrides os.Stdin when reading piped input.
	Stdin io.Reader

	// InputFormat forces the payload format. Empty detects it.
	InputFormat secrets.InputFormat

	// Output is the envelope file. Empty uses the project's configured path.
	Output string

	// Stdout returns the envelope in the result instead of writing a file.
	Stdout bool
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// OutputPath is the absolute path written. Empty with Stdout.
	OutputPath string

	// CipherText is set only with Stdout.
	CipherText string

	Keys       []string
	Tag        envelope.Tag
	Iterations int
}

// Encrypt reads a plaintext payload and encrypts it into an envelope file.
//
// Returns ErrConfiguration if the master key is missing or too short.
// Returns ErrInvalidPayload if the input is not a flat object.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	payload, err := readPayload(opts.Input, opts.Stdin, opts.InputFormat)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := clientOrDefault(opts.Client)
	result := &EncryptResult{
		Keys:       payload.Keys(),
		Tag:        envelope.TagBase64,
		Iterations: client.Engine().Iterations(),
	}

	if opts.Stdout {
		cipherText, err := client.Encrypt(payload)
		if err != nil {
			return nil, err
		}
		result.CipherText = cipherText
		return result, nil
	}

	path, err := secrets.EncryptToFile(client, payload, proj.filePath(opts.Output))
	if err != nil {
		return nil, err
	}
	result.OutputPath = path

	audit.Log(audit.Entry{
		Operation:  audit.OpEncrypt,
		Path:       audit.RelPath(path),
		Tag:        string(result.Tag),
		Iterations: result.Iterations,
		KeysCount:  len(result.Keys),
	})

	return result, nil
}
