// Package config loads the application configuration: a YAML file for the
// declarative parts, environment variables overriding on top. Backend
// credentials stay in the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/podvault-labs/podcatalog/internal/platform/env"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendMinio    Backend = "minio"
	BackendPostgres Backend = "postgres"
)

type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Identity IdentityConfig `yaml:"identity"`
	Audit    AuditConfig    `yaml:"audit"`
	Export   ExportConfig   `yaml:"export"`
}

type StoreConfig struct {
	Backend Backend `yaml:"backend"`
}

type IdentityConfig struct {
	Mode        string `yaml:"mode"`
	StaticWebID string `yaml:"static_webid"`
}

type AuditConfig struct {
	// Container is the shared, multi-tenant, append-only audit container.
	Container string `yaml:"container"`
	BusBuffer int    `yaml:"bus_buffer"`
}

type ExportConfig struct {
	Limit int `yaml:"limit"`
}

// Load reads the file when it exists, then applies environment overrides.
// A missing file is not an error; everything has a default or an env var.
func Load(path string) (Config, error) {
	cfg := Config{
		Store:    StoreConfig{Backend: BackendMemory},
		Identity: IdentityConfig{Mode: "static"},
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config: %w", err)
			}
		}
	}
	cfg.Store.Backend = Backend(env.String("PODCATALOG_STORE_BACKEND", string(cfg.Store.Backend)))
	cfg.Identity.Mode = env.String("PODCATALOG_IDENTITY_MODE", cfg.Identity.Mode)
	cfg.Identity.StaticWebID = env.String("PODCATALOG_STATIC_WEBID", cfg.Identity.StaticWebID)
	cfg.Audit.Container = env.String("PODCATALOG_AUDIT_CONTAINER", cfg.Audit.Container)
	busBuffer, err := env.Int("PODCATALOG_AUDIT_BUS_BUFFER", cfg.Audit.BusBuffer)
	if err != nil {
		return Config{}, err
	}
	cfg.Audit.BusBuffer = busBuffer
	limit, err := env.Int("PODCATALOG_EXPORT_LIMIT", cfg.Export.Limit)
	if err != nil {
		return Config{}, err
	}
	cfg.Export.Limit = limit
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendMinio, BackendPostgres:
	default:
		return fmt.Errorf("store backend must be one of: memory, minio, postgres (got %q)", c.Store.Backend)
	}
	switch c.Identity.Mode {
	case "static", "oidc":
	default:
		return fmt.Errorf("identity mode must be one of: static, oidc (got %q)", c.Identity.Mode)
	}
	if c.Audit.BusBuffer < 0 {
		return errors.New("audit bus buffer must be >= 0")
	}
	if c.Export.Limit < 0 {
		return errors.New("export limit must be >= 0")
	}
	return nil
}
