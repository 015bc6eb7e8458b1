// Package doppler fetches secrets from the Doppler API.
package doppler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
	"github.com/PolarWolf314/gitops-secrets/internal/providers"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// Name is the provider's registry name.
	Name = "doppler"

	// DefaultBaseURL is the Doppler API endpoint.
	DefaultBaseURL = "https://api.doppler.com"

	downloadPath = "/v3/configs/config/secrets/download?format=json"
	userAgent    = "gitops-secrets-go"
)

func init() {
	providers.Register(Name, func() (providers.Provider, error) {
		return New()
	})
}

type config struct {
	Token string `env:"DOPPLER_TOKEN"`
}

// Provider downloads the secrets of the config a service token belongs to.
type Provider struct {
	token   string
	baseURL string
	client  *retryablehttp.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithToken sets the service token instead of reading DOPPLER_TOKEN.
func WithToken(token string) Option {
	return func(p *Provider) { p.token = token }
}

// WithBaseURL points the provider at a different API host.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// WithRetryMax sets how many times failed requests are retried.
func WithRetryMax(n int) Option {
	return func(p *Provider) { p.client.RetryMax = n }
}

// New returns a Provider. The token defaults to the DOPPLER_TOKEN variable.
func New(opts ...Option) (*Provider, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return nil, fmt.Errorf("reading doppler configuration: %w", err)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	// Keep the response so the status code can be reported.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	p := &Provider{
		token:   cfg.Token,
		baseURL: DefaultBaseURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Fetch downloads all secrets as a flat JSON object.
func (p *Provider) Fetch(ctx context.Context) (secrets.Payload, error) {
	if p.token == "" {
		return nil, apiError("DOPPLER_TOKEN is not set")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+downloadPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building doppler request: %w", err)
	}
	req.SetBasicAuth(p.token, "")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apiError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, apiError(fmt.Sprintf("reading response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	var payload secrets.Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, apiError("response is not a JSON object")
	}
	return payload, nil
}

func apiError(detail string) error {
	return fmt.Errorf("Doppler API Error: %s: %w", detail, kerrors.ErrProviderRequest)
}
