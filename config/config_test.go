package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Fatalf("expected default API_BASE_URL, got %s", cfg.APIBaseURL)
	}
	if cfg.ServerPort != 3000 {
		t.Fatalf("expected default SERVER_PORT 3000, got %d", cfg.ServerPort)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %s", cfg.HTTPTimeout)
	}
	if cfg.TokenFile == "" {
		t.Fatal("expected a non-empty default token file path")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://classroom.example.com/api")
	t.Setenv("TOKEN_FILE", "/tmp/tokens.json")
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg := LoadConfig()
	if cfg.APIBaseURL != "https://classroom.example.com/api" {
		t.Fatalf("expected API_BASE_URL override, got %s", cfg.APIBaseURL)
	}
	if cfg.TokenFile != "/tmp/tokens.json" {
		t.Fatalf("expected TOKEN_FILE override, got %s", cfg.TokenFile)
	}
	if cfg.ServerPort != 8088 {
		t.Fatalf("expected SERVER_PORT override, got %d", cfg.ServerPort)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("expected HTTP_TIMEOUT_SECONDS override, got %s", cfg.HTTPTimeout)
	}
}
