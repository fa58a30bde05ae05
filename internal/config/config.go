// Package config handles loading and validation of service configuration.
// Supports both development (env vars, optional .env) and production
// (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

// Config holds all service configuration. Environment variables use the
// SHOPFRONT_ prefix with double underscores as section separators, e.g.
// SHOPFRONT_SERVER__PORT, SHOPFRONT_GEMINI__API_KEY.
type Config struct {
	Primary  PrimaryConfig  `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Shipping ShippingConfig `koanf:"shipping"`
	Sentry   SentryConfig   `koanf:"sentry"`
	Logger   LoggerConfig   `koanf:"logger"`
	Stylist  StylistConfig  `koanf:"stylist"`
}

type PrimaryConfig struct {
	// Env is "development" or "production". Production pulls secrets from
	// Secret Manager.
	Env        string `koanf:"env" validate:"required,oneof=development production"`
	GCPProject string `koanf:"gcp_project"`
	SecretName string `koanf:"secret_name"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// APIConfig points at the storefront backend.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`

	// CredentialFile overrides the default credential path. Empty means
	// the OS config directory.
	CredentialFile string `koanf:"credential_file"`
}

type GeminiConfig struct {
	// APIKey is required to run the stylist proxy. Loaded from Secret
	// Manager in production.
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type ShippingConfig struct {
	// Token is the GHN provider token. Loaded from Secret Manager in
	// production.
	Token   string `koanf:"token"`
	ShopID  int    `koanf:"shop_id"`
	BaseURL string `koanf:"base_url"`
}

type SentryConfig struct {
	// DSN enables Sentry reporting when set.
	DSN string `koanf:"dsn"`
}

type LoggerConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

type StylistConfig struct {
	// CatalogTTL bounds how long one catalog snapshot feeds prompts.
	CatalogTTL time.Duration `koanf:"catalog_ttl" validate:"required"`
}

// defaults seed every field a development setup can run without.
var defaults = map[string]interface{}{
	"primary.env":          "development",
	"server.port":          "8090",
	"server.read_timeout":  15 * time.Second,
	"server.write_timeout": 120 * time.Second,
	"server.idle_timeout":  60 * time.Second,
	"api.base_url":         "http://localhost:8080/api/v1",
	"api.timeout":          30 * time.Second,
	"gemini.model":         "gemini-2.0-flash",
	"logger.level":         "info",
	"stylist.catalog_ttl":  5 * time.Minute,
}

// Load reads configuration from defaults, then environment variables. In
// production mode it then overlays secrets from Secret Manager. Validates
// required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err := k.Load(env.Provider("SHOPFRONT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "SHOPFRONT_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Primary.Env == "production" {
		if err := cfg.loadFromSecretManager(ctx); err != nil {
			return nil, fmt.Errorf("loading secrets: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// secretPayload is the JSON shape stored in Secret Manager.
type secretPayload struct {
	GeminiAPIKey string `json:"gemini_api_key"`
	GHNToken     string `json:"ghn_token"`
	SentryDSN    string `json:"sentry_dsn,omitempty"`
}

// loadFromSecretManager fetches service secrets from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{name}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	if c.Primary.GCPProject == "" {
		return fmt.Errorf("primary.gcp_project required in production environment")
	}
	if c.Primary.SecretName == "" {
		return fmt.Errorf("primary.secret_name required in production environment")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.Primary.GCPProject, c.Primary.SecretName)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	var payload secretPayload
	if err := json.Unmarshal(result.Payload.Data, &payload); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	// Secrets win over whatever the environment carried.
	if payload.GeminiAPIKey != "" {
		c.Gemini.APIKey = payload.GeminiAPIKey
	}
	if payload.GHNToken != "" {
		c.Shipping.Token = payload.GHNToken
	}
	if payload.SentryDSN != "" {
		c.Sentry.DSN = payload.SentryDSN
	}

	return nil
}
