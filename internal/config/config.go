package config

import (
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	RepoRoot string `env:"REPO_ROOT" envDefault:".."`
	// CatalogDir is resolved against RepoRoot unless absolute.
	CatalogDir    string   `env:"CATALOG_DIR" envDefault:"App/public"`
	LockDir       string   `env:"LOCK_DIR"`
	MaxUploadSize string   `env:"MAX_UPLOAD_SIZE" envDefault:"20M"`
	AllowOrigins  []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	StorageBucket   string `env:"STORAGE_BUCKET"`
	StoragePrefix   string `env:"STORAGE_PREFIX" envDefault:"catalog/"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS_FILE"`

	GitSHA          string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime       string `env:"BUILD_TIME"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) CatalogRoot() string {
	if filepath.IsAbs(c.CatalogDir) {
		return filepath.Clean(c.CatalogDir)
	}
	return filepath.Join(c.RepoRoot, c.CatalogDir)
}

// LockRoot holds the per-slug lock files; defaults to a hidden dir in the catalog.
func (c *Config) LockRoot() string {
	if c.LockDir != "" {
		return c.LockDir
	}
	return filepath.Join(c.CatalogRoot(), ".locks")
}

func (c *Config) MirrorEnabled() bool {
	return c.StorageBucket != ""
}

func (c *Config) ShutdownGrace() time.Duration {
	if c.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeout) * time.Second
}
