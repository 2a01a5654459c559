package config

import (
	"os"
	"testing"
)

// unsetenv clears key for the duration of the test. t.Setenv registers the
// restore; os.Unsetenv then removes the value it just set.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "sagacious_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.MongoDB.Database != "sagacious_test" {
		t.Fatalf("unexpected database: %q", cfg.MongoDB.Database)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetenv(t, "SERVER_PORT")
	unsetenv(t, "SERVER_HOST")
	unsetenv(t, "CACHE_TTL_SECONDS")
	unsetenv(t, "MINIO_BUCKET")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 9080 {
		t.Fatalf("default port = %d, want 9080", cfg.Server.Port)
	}
	if cfg.Cache.TTL.Seconds() != 60 {
		t.Fatalf("default cache TTL = %v, want 60s", cfg.Cache.TTL)
	}
	if cfg.MinIO.Bucket != "sagacious" {
		t.Fatalf("default bucket = %q, want %q", cfg.MinIO.Bucket, "sagacious")
	}
}
