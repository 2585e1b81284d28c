package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("configs", "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("expected default base url, got %s", cfg.API.BaseURL)
	}
	if cfg.APITimeout() != 10*time.Second {
		t.Fatalf("expected 10s api timeout, got %s", cfg.APITimeout())
	}
	if cfg.SnackbarDuration() != 6*time.Second {
		t.Fatalf("expected 6s snackbar duration, got %s", cfg.SnackbarDuration())
	}
	if cfg.Storage.Driver != "file" {
		t.Fatalf("expected file storage driver, got %s", cfg.Storage.Driver)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("UNICONNECT_API_BASE_URL", "https://api.example.com")
	t.Setenv("UNICONNECT_API_TIMEOUT", "3s")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AUTH_LEGACY_OFFLINE_LOGIN", "yes")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("expected base url override, got %s", cfg.API.BaseURL)
	}
	if cfg.APITimeout() != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.APITimeout())
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if !cfg.Auth.LegacyOfflineLogin {
		t.Fatalf("expected legacy offline login enabled")
	}
	if cfg.Storage.Redis.DB != 2 {
		t.Fatalf("expected redis db 2, got %d", cfg.Storage.Redis.DB)
	}
}

func TestLoadConfigLegacyBaseURLAlias(t *testing.T) {
	t.Setenv("REACT_APP_API_BASE_URL", "https://legacy.example.com/api")

	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://legacy.example.com/api" {
		t.Fatalf("expected legacy alias to apply, got %s", cfg.API.BaseURL)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`
api:
  base_url: https://yaml.example.com
storage:
  driver: redis
  redis:
    addr: cache:6379
chat:
  peers:
    - id: user1
      name: Shruthi
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Redis.Addr != "cache:6379" {
		t.Fatalf("expected redis addr from yaml, got %s", cfg.Storage.Redis.Addr)
	}
	if len(cfg.Chat.Peers) != 1 || cfg.Chat.Peers[0].Name != "Shruthi" {
		t.Fatalf("expected one chat peer, got %+v", cfg.Chat.Peers)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	if _, err := LoadConfig("config.yaml"); err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}

func TestLoadConfigRejectsMalformedEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "two")

	_, err := LoadConfig("config.yaml")
	if err == nil || !strings.Contains(err.Error(), "REDIS_DB") {
		t.Fatalf("expected error naming REDIS_DB, got %v", err)
	}
}
