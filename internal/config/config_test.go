package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "podcatalog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Fatalf("default backend must be memory, got %q", cfg.Store.Backend)
	}
	if cfg.Identity.Mode != "static" {
		t.Fatalf("default identity mode must be static, got %q", cfg.Identity.Mode)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: postgres
identity:
  mode: static
  static_webid: https://alice.pod.example/profile/card#me
audit:
  container: https://audit.pod.example/podcatalog/trail
  bus_buffer: 128
export:
  limit: 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendPostgres {
		t.Fatalf("unexpected backend: %q", cfg.Store.Backend)
	}
	if cfg.Identity.StaticWebID != "https://alice.pod.example/profile/card#me" {
		t.Fatalf("unexpected webid: %q", cfg.Identity.StaticWebID)
	}
	if cfg.Audit.Container != "https://audit.pod.example/podcatalog/trail" || cfg.Audit.BusBuffer != 128 {
		t.Fatalf("unexpected audit config: %#v", cfg.Audit)
	}
	if cfg.Export.Limit != 50 {
		t.Fatalf("unexpected export limit: %d", cfg.Export.Limit)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: minio
export:
  limit: 10
`)
	t.Setenv("PODCATALOG_STORE_BACKEND", "memory")
	t.Setenv("PODCATALOG_EXPORT_LIMIT", "25")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Fatalf("environment must win over the file, got %q", cfg.Store.Backend)
	}
	if cfg.Export.Limit != 25 {
		t.Fatalf("environment must win over the file, got %d", cfg.Export.Limit)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: dynamo\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown backend")
	}
}

func TestLoadRejectsUnknownIdentityMode(t *testing.T) {
	path := writeConfig(t, "identity:\n  mode: ldap\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown identity mode")
	}
}

func TestLoadRejectsBadIntEnv(t *testing.T) {
	t.Setenv("PODCATALOG_EXPORT_LIMIT", "many")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for non-numeric limit")
	}
}
