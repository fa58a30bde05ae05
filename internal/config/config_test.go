package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 5*time.Minute, cfg.Stylist.CatalogTTL)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHOPFRONT_SERVER__PORT", "9999")
	t.Setenv("SHOPFRONT_API__BASE_URL", "https://api.example.com/v1")
	t.Setenv("SHOPFRONT_GEMINI__API_KEY", "sk-test")
	t.Setenv("SHOPFRONT_SHIPPING__TOKEN", "ghn-test")
	t.Setenv("SHOPFRONT_LOGGER__LEVEL", "debug")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "sk-test", cfg.Gemini.APIKey)
	assert.Equal(t, "ghn-test", cfg.Shipping.Token)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "SHOPFRONT_LOGGER__LEVEL", "loud"},
		{"bad environment", "SHOPFRONT_PRIMARY__ENV", "staging"},
		{"bad base url", "SHOPFRONT_API__BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestProductionRequiresSecretLocation(t *testing.T) {
	t.Setenv("SHOPFRONT_PRIMARY__ENV", "production")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gcp_project")
}
