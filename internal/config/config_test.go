package config

import (
	"os"
	"testing"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	defer func() {
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("REDIS_URL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected MongoURI to be set, got %s", cfg.MongoURI)
	}

	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("expected RedisURL to be set, got %s", cfg.RedisURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MONGODB_URI")
	os.Unsetenv("REDIS_URL")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	defer func() {
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("REDIS_URL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.DBName != "placekeeper" {
		t.Errorf("expected default DBName 'placekeeper', got %s", cfg.DBName)
	}

	if cfg.FixtureBaseURL != "https://jsonplaceholder.typicode.com" {
		t.Errorf("unexpected default FixtureBaseURL %s", cfg.FixtureBaseURL)
	}

	if !cfg.SeedOnStart {
		t.Error("expected SeedOnStart to default to true")
	}

	if cfg.SeedUserLimit != 10 {
		t.Errorf("expected default SeedUserLimit 10, got %d", cfg.SeedUserLimit)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.example.com, https://b.example.com,"}
	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(origins))
	}
	if origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origin: %s", origins[1])
	}

	cfg.CORSAllowedOrigins = ""
	if cfg.GetCORSAllowedOrigins() != nil {
		t.Error("expected nil for empty origins")
	}
}
