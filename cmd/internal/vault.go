package internal

import (
	"os"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
	"github.com/sanLimbu/todo-list/internal/envvar/vault"
)

// NewVaultProvider instantiates the Vault client using configuration defined in environment variables,
// nil is returned when VAULT_ADDRESS is not set.
func NewVaultProvider() (envvar.Provider, error) {
	vaultAddress := os.Getenv("VAULT_ADDRESS")
	if vaultAddress == "" {
		return nil, nil
	}

	provider, err := vault.New(os.Getenv("VAULT_TOKEN"), vaultAddress, os.Getenv("VAULT_PATH"))
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "vault.New")
	}

	return provider, nil
}

// NewConfiguration loads the env file and instantiates the configuration.
func NewConfiguration(env string) (*envvar.Configuration, error) {
	if err := envvar.Load(env); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "envvar.Load")
	}

	provider, err := NewVaultProvider()
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "NewVaultProvider")
	}

	return envvar.New(provider), nil
}
