package envvar

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sanLimbu/todo-list/internal"
)

// Provider defines the secrets store used for reading values marked as secure.
type Provider interface {
	Get(key string) (string, error)
}

// Configuration reads values from environment variables, secure values are read from the Provider.
type Configuration struct {
	provider Provider
}

// Load reads the env filename and loads it into ENV for this process.
func Load(filename string) error {
	if filename == "" {
		return nil
	}

	if err := godotenv.Load(filename); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "loading env var file")
	}

	return nil
}

// New returns a new Configuration, provider may be nil when no secrets store is used.
func New(provider Provider) *Configuration {
	return &Configuration{
		provider: provider,
	}
}

// Get returns the value from environment variable `<key>`. When an environment variable `<key>_SECURE` exists
// the provider is used for getting the value.
func (c *Configuration) Get(key string) (string, error) {
	res := os.Getenv(key)

	valSecret := os.Getenv(fmt.Sprintf("%s_SECURE", key))
	if valSecret == "" {
		return res, nil
	}

	if c.provider == nil {
		return "", internal.NewErrorf(internal.ErrorCodeInvalidArgument, "no secrets provider configured for %s", key)
	}

	valSecretRes, err := c.provider.Get(valSecret)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "provider.Get")
	}

	return valSecretRes, nil
}

// Default returns the value of key, or def when it is not defined.
func (c *Configuration) Default(key, def string) string {
	res, err := c.Get(key)
	if err != nil || res == "" {
		return def
	}

	return res
}
