package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_ops/internal/shared"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"HTTP_ADDR", "CACHE_TTL_SECONDS", "ROLLOVER_WORKERS", "API_RPS", "WEBHOOK_URL"} {
		t.Setenv(k, "")
	}

	c := shared.Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL = %v", c.CacheTTL)
	}
	if c.RolloverWorkers != 4 || c.APIRPS != 20 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	body := "HTTP_ADDR=:9999\nROLLOVER_WORKERS=0\nAPI_RPS=2.5\nREDIS_DB=3\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	// set variables win over the file
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("ROLLOVER_WORKERS", "")
	t.Setenv("API_RPS", "")
	t.Setenv("REDIS_DB", "")
	// unset so godotenv can fill them
	os.Unsetenv("ROLLOVER_WORKERS")
	os.Unsetenv("API_RPS")
	os.Unsetenv("REDIS_DB")

	c := shared.Load()
	if c.HTTPAddr != ":7000" {
		t.Fatalf("HTTPAddr = %q, want env to win", c.HTTPAddr)
	}
	if c.RolloverWorkers != 1 {
		t.Fatalf("RolloverWorkers = %d, want clamped to 1", c.RolloverWorkers)
	}
	if c.APIRPS != 2.5 || c.RedisDB != 3 {
		t.Fatalf("unexpected values from .env: %+v", c)
	}
}
