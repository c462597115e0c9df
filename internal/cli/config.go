package cli

import (
	"os"

	"github.com/frankenpanel/frankenpanel/internal/console/credstore"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("PANELCTL_SERVER", "http://localhost:8000"),
		Token:     os.Getenv("PANELCTL_TOKEN"),
		TokenFile: getEnvOrDefault("PANELCTL_TOKEN_FILE", credstore.DefaultTokenFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// Credentials returns the token store to use. An explicit token from
// flag or environment takes priority over the token file.
func (c *Config) Credentials() credstore.Store {
	if c.Token != "" {
		store := credstore.NewMemStore()
		_ = store.Save(c.Token)
		return store
	}
	return credstore.NewFileStore(c.TokenFile)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
