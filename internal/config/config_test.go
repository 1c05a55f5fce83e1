package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected server addr %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 3 {
		t.Fatalf("unexpected allowed origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Model.Timeout != 30*time.Second {
		t.Fatalf("unexpected model timeout %s", cfg.Model.Timeout)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Fatalf("unexpected fetch timeout %s", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxBytes != 10<<20 {
		t.Fatalf("unexpected fetch size cap %d", cfg.Fetch.MaxBytes)
	}
	if cfg.PlantNet.APIKey != "" || cfg.Redis.Addr != "" {
		t.Fatal("optional integrations must default to disabled")
	}
	if cfg.Geo.BigDataCloudURL == "" {
		t.Fatal("primary geocoder URL must have a default")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("ECOLENS_SERVER_ADDR", ":9090")
	t.Setenv("ECOLENS_PLANTNET_API_KEY", "pn-key")
	t.Setenv("ECOLENS_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected env override, got %q", cfg.Server.Addr)
	}
	if cfg.PlantNet.APIKey != "pn-key" {
		t.Fatalf("expected env override, got %q", cfg.PlantNet.APIKey)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected env override, got %q", cfg.Redis.Addr)
	}
}
