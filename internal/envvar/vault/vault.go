package vault

import (
	"sync"

	"github.com/hashicorp/vault/api"

	"github.com/sanLimbu/todo-list/internal"
)

// Provider defines the Vault provider.
type Provider struct {
	path    string
	logical *api.Logical

	mu      sync.Mutex
	secrets map[string]string
}

// New instantiates the Vault client.
func New(token, addr, path string) (*Provider, error) {
	config := &api.Config{
		Address: addr,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "api.NewClient")
	}

	client.SetToken(token)

	return &Provider{
		path:    path,
		logical: client.Logical(),
	}, nil
}

// Get returns the value of the secret field v stored at the configured path. Secrets are read once and
// kept in memory afterwards.
func (p *Provider) Get(v string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.secrets == nil {
		secret, err := p.logical.Read(p.path)
		if err != nil {
			return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "logical.Read")
		}

		if secret == nil {
			return "", internal.NewErrorf(internal.ErrorCodeNotFound, "secret not found at %s", p.path)
		}

		// KV version 2 nests the values under "data".
		data := secret.Data
		if nested, ok := data["data"].(map[string]interface{}); ok {
			data = nested
		}

		p.secrets = make(map[string]string, len(data))

		for k, val := range data {
			if s, ok := val.(string); ok {
				p.secrets[k] = s
			}
		}
	}

	res, ok := p.secrets[v]
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "secret %s not found", v)
	}

	return res, nil
}
