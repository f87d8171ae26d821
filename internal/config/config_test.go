package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultRedirectPort, cfg.RedirectPort)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultAuthBaseURL, cfg.AuthBaseURL)
	assert.Equal(t, DefaultMaxSuggestions, cfg.MaxSuggestions)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TICKTICK_CLIENT_ID", "id-from-env")
	t.Setenv("TICKTICK_CLIENT_SECRET", "secret-from-env")
	t.Setenv("TICKTICK_REDIRECT_PORT", "18080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "id-from-env", cfg.ClientID)
	assert.Equal(t, "secret-from-env", cfg.ClientSecret)
	assert.Equal(t, 18080, cfg.RedirectPort)
	assert.True(t, cfg.HasCredentials())
}

func TestRedirectURI(t *testing.T) {
	cfg := &Config{RedirectPort: 13337}
	assert.Equal(t, "http://127.0.0.1:13337", cfg.RedirectURI())
}

func TestHasCredentials(t *testing.T) {
	assert.False(t, (&Config{ClientID: "only-id"}).HasCredentials())
	assert.False(t, (&Config{ClientSecret: "only-secret"}).HasCredentials())
	assert.True(t, (&Config{ClientID: "id", ClientSecret: "s"}).HasCredentials())
}
