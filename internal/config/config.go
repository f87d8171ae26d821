// Package config loads tickadd configuration via Viper from
// ~/.config/tickadd/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default endpoints and tunables.
const (
	DefaultAPIBaseURL     = "https://api.ticktick.com"
	DefaultAuthBaseURL    = "https://ticktick.com"
	DefaultRedirectPort   = 13337
	DefaultMaxSuggestions = 5
)

// Config holds all tickadd configuration.
type Config struct {
	// OAuth client credentials issued by the TickTick developer console.
	ClientID     string
	ClientSecret string

	// RedirectPort is the local port the loopback authorization server
	// listens on. Must match the redirect URI registered for the client.
	RedirectPort int

	// APIBaseURL is the base URL of the task API.
	APIBaseURL string

	// AuthBaseURL is the base URL of the OAuth endpoints.
	AuthBaseURL string

	// TokenPath overrides the default token file location when set.
	TokenPath string

	// MaxSuggestions caps autocomplete candidates per probe.
	MaxSuggestions int
}

// HasCredentials reports whether both OAuth client credentials are set.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// RedirectURI returns the loopback redirect URI for the configured port.
func (c *Config) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d", c.RedirectPort)
}

// Load reads configuration from config.yaml (searched in
// ~/.config/tickadd, then the working directory) merged with
// TICKTICK_*-style environment variables. A missing config file is not
// an error; credentials may come entirely from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ticktick")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		ClientID:       v.GetString("client_id"),
		ClientSecret:   v.GetString("client_secret"),
		RedirectPort:   v.GetInt("redirect_port"),
		APIBaseURL:     v.GetString("api_base_url"),
		AuthBaseURL:    v.GetString("auth_base_url"),
		TokenPath:      v.GetString("token_path"),
		MaxSuggestions: v.GetInt("max_suggestions"),
	}

	if cfg.RedirectPort <= 0 || cfg.RedirectPort > 65535 {
		return nil, fmt.Errorf("invalid redirect_port %d", cfg.RedirectPort)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("redirect_port", DefaultRedirectPort)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("auth_base_url", DefaultAuthBaseURL)
	v.SetDefault("max_suggestions", DefaultMaxSuggestions)
}

// configDir returns the tickadd configuration directory.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tickadd"), nil
}
