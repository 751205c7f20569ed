package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Port != 4322 || cfg.Env != "development" || cfg.DB != "sales_manage.db" || cfg.StaticDir != "static" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("port: 9999\nenv: production\ndb: test.db\n"), 0644)

	cfg := loadConfig(path)
	if cfg.Port != 9999 || cfg.Env != "production" || cfg.DB != "test.db" {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.StaticDir != "static" {
		t.Errorf("Unset file keys must keep defaults: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("port: 9999\n"), 0644)

	t.Setenv("PORT", "8123")
	t.Setenv("SM_ENV", "production")
	t.Setenv("SM_DB", "override.db")

	cfg := loadConfig(path)
	if cfg.Port != 8123 || cfg.Env != "production" || cfg.DB != "override.db" {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}
