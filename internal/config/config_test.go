package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "REPO_ROOT", "CATALOG_DIR", "LOCK_DIR", "STORAGE_BUCKET", "CORS_ALLOW_ORIGINS", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port=%q", cfg.Port)
	}
	if got, want := cfg.CatalogRoot(), filepath.Join("..", "App", "public"); got != want {
		t.Fatalf("catalog root=%q want=%q", got, want)
	}
	if got, want := cfg.LockRoot(), filepath.Join("..", "App", "public", ".locks"); got != want {
		t.Fatalf("lock root=%q want=%q", got, want)
	}
	if cfg.MirrorEnabled() {
		t.Fatalf("mirror should be off without a bucket")
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("origins=%v", cfg.AllowOrigins)
	}
	if cfg.ShutdownGrace() != 10*time.Second {
		t.Fatalf("grace=%v", cfg.ShutdownGrace())
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REPO_ROOT", "/repo")
	t.Setenv("CATALOG_DIR", dir)
	t.Setenv("LOCK_DIR", "/tmp/locks")
	t.Setenv("STORAGE_BUCKET", "spools-bucket")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173,https://spools.example.com")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogRoot() != dir {
		t.Fatalf("absolute catalog dir should win, got %q", cfg.CatalogRoot())
	}
	if cfg.LockRoot() != "/tmp/locks" {
		t.Fatalf("lock root=%q", cfg.LockRoot())
	}
	if !cfg.MirrorEnabled() {
		t.Fatalf("mirror should be on")
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("origins=%v", cfg.AllowOrigins)
	}
	if cfg.ShutdownGrace() != 3*time.Second {
		t.Fatalf("grace=%v", cfg.ShutdownGrace())
	}
}
