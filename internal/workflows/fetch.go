package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/envelope"
	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/providers"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	// Registers the doppler provider.
	_ "github.com/PolarWolf314/gitops-secrets/internal/providers/doppler"
)

// FetchOptions configures the fetch workflow.
type FetchOptions struct {
	// Client performs the encryption. Nil uses the environment master key.
	Client *secrets.Client

	// Provider is the registered provider name. Empty uses the project config.
	Provider string

	// Output overrides the envelope file, or the module path with Module.
	Output string

	// Module writes a JavaScript module instead of an envelope file.
	Module         bool
	Format         secrets.ModuleFormat
	CipherTextOnly bool
}

// FetchResult contains the outcome of a fetch operation.
type FetchResult struct {
	Provider   string
	OutputPath string
	Module     bool
	Format     secrets.ModuleFormat
	Keys       []string
	Iterations int
}

// Fetch downloads secrets from a provider and encrypts them into the
// repository. Plaintext never touches the disk.
//
// Returns ErrUnknownProvider for unregistered names and ErrProviderRequest
// when the provider call fails.
func Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	name := opts.Provider
	if name == "" {
		name = proj.config.Provider.Name
	}
	if name == "" {
		return nil, fmt.Errorf("%w: no provider given and none configured", kerrors.ErrUnknownProvider)
	}

	provider, err := providers.Get(name)
	if err != nil {
		return nil, err
	}

	// Validate the key before the network round trip.
	client := clientOrDefault(opts.Client)
	if _, err := client.MasterKey(); err != nil {
		return nil, err
	}

	payload, err := provider.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Module {
		cipherText, err := client.Encrypt(payload)
		if err != nil {
			return nil, err
		}
		built, err := writeModule(proj, cipherText, payload.Keys(), opts.Output, opts.Format, opts.CipherTextOnly, audit.OpFetch, name)
		if err != nil {
			return nil, err
		}
		return &FetchResult{
			Provider:   name,
			OutputPath: built.ModulePath,
			Module:     true,
			Format:     built.Format,
			Keys:       built.Keys,
			Iterations: built.Iterations,
		}, nil
	}

	path, err := secrets.EncryptToFile(client, payload, proj.filePath(opts.Output))
	if err != nil {
		return nil, err
	}

	result := &FetchResult{
		Provider:   name,
		OutputPath: path,
		Keys:       payload.Keys(),
		Iterations: client.Engine().Iterations(),
	}

	audit.Log(audit.Entry{
		Operation:  audit.OpFetch,
		Path:       audit.RelPath(path),
		Tag:        string(envelope.TagBase64),
		Iterations: result.Iterations,
		KeysCount:  len(result.Keys),
		Provider:   name,
	})

	return result, nil
}
