package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "STORE_DSN", "CATALOG_URL", "CATALOG_TIMEOUT", "LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8081" || cfg.StoreDriver != "sqlite" || cfg.StoreDSN != "shopfront.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CatalogURL != "https://fakestoreapi.com" || cfg.CatalogTimeout != 10*time.Second {
		t.Fatalf("unexpected catalog defaults: %+v", cfg)
	}
}

func TestLoadPebbleDir(t *testing.T) {
	t.Setenv("STORE_DRIVER", "pebble")
	t.Setenv("STORE_DSN", "")
	t.Setenv("CATALOG_TIMEOUT", "nonsense")
	cfg := Load()
	if cfg.StoreDSN != "./shopfront-data" {
		t.Fatalf("pebble dsn=%q", cfg.StoreDSN)
	}
	if cfg.CatalogTimeout != 10*time.Second {
		t.Fatalf("bad timeout should fall back, got %s", cfg.CatalogTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "memory")
	cfg := Load()
	if cfg.Port != "9000" || cfg.CatalogTimeout != 3*time.Second || cfg.StoreDriver != "memory" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_URL=http://127.0.0.1:9999\nPORT=7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("CATALOG_URL", "")
	os.Unsetenv("CATALOG_URL")
	t.Setenv("PORT", "9100")

	cfg := Load()
	if cfg.CatalogURL != "http://127.0.0.1:9999" {
		t.Fatalf("CATALOG_URL from .env not applied: %q", cfg.CatalogURL)
	}
	if cfg.Port != "9100" {
		t.Fatalf(".env overrode the environment: %q", cfg.Port)
	}
}
