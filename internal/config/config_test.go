package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/backoffice")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("expected development env by default, got %q", cfg.Env)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool defaults = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.BrandName != "CONRAD" {
		t.Errorf("BrandName = %q, want CONRAD", cfg.BrandName)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestValidateProductionRequiresAuth(t *testing.T) {
	cfg := &Config{Env: "production", BrandName: "CONRAD"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error in production without auth configuration")
	}

	cfg.AuthIssuer = "https://auth.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error with issuer set: %v", err)
	}
}

func TestValidateDevAllowsMissingAuth(t *testing.T) {
	cfg := &Config{Env: "development", BrandName: "CONRAD"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error in development: %v", err)
	}
}
