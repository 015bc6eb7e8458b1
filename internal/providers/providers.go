// Package providers fetches secrets from third-party secret managers so they
// can be encrypted into the repository.
package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// Provider fetches the current set of secrets.
type Provider interface {
	Fetch(ctx context.Context) (secrets.Payload, error)
}

// Factory builds a Provider from its default configuration.
type Factory func() (Provider, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a provider available under name. It panics on duplicates.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("providers: %q registered twice", name))
	}
	factories[name] = factory
}

// Get builds the provider registered under name.
func Get(name string) (Provider, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownProvider, name)
	}
	return factory()
}

// Names lists registered providers in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
