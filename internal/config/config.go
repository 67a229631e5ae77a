package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DatabaseURL string // DISCOVERY_DATABASE_URL (required)
	HTTPAddr    string // DISCOVERY_HTTP_ADDR (default ":8080")
	NATSURL     string // DISCOVERY_NATS_URL (optional, empty = no events)
	AuthToken   string // DISCOVERY_AUTH_TOKEN (optional, empty = auth disabled)

	// Backup sync settings
	SyncInterval   time.Duration // DISCOVERY_SYNC_INTERVAL (default 1h; 0 = disabled)
	SyncS3Bucket   string        // DISCOVERY_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // DISCOVERY_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // DISCOVERY_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // DISCOVERY_SYNC_S3_KEY (default "discovery/backup.jsonl")
	SyncGitRepo    string        // DISCOVERY_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // DISCOVERY_SYNC_GIT_FILE (default "discovery.jsonl")
	SyncGitBranch  string        // DISCOVERY_SYNC_GIT_BRANCH (default "main")
}

// fileConfig is the on-disk TOML form named by DISCOVERY_CONFIG. Every key
// is optional; environment variables take precedence over it.
type fileConfig struct {
	DatabaseURL string `toml:"database_url"`
	HTTPAddr    string `toml:"http_addr"`
	NATSURL     string `toml:"nats_url"`
	AuthToken   string `toml:"auth_token"`

	Sync struct {
		Interval   string `toml:"interval"`
		S3Bucket   string `toml:"s3_bucket"`
		S3Endpoint string `toml:"s3_endpoint"`
		S3Region   string `toml:"s3_region"`
		S3Key      string `toml:"s3_key"`
		GitRepo    string `toml:"git_repo"`
		GitFile    string `toml:"git_file"`
		GitBranch  string `toml:"git_branch"`
	} `toml:"sync"`
}

func Load() (*Config, error) {
	var fc fileConfig
	if path := os.Getenv("DISCOVERY_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("DISCOVERY_CONFIG: %w", err)
		}
	}

	c := &Config{
		DatabaseURL:    envOrDefault("DISCOVERY_DATABASE_URL", fc.DatabaseURL),
		HTTPAddr:       envOrDefault("DISCOVERY_HTTP_ADDR", firstNonEmpty(fc.HTTPAddr, ":8080")),
		NATSURL:        envOrDefault("DISCOVERY_NATS_URL", fc.NATSURL),
		AuthToken:      envOrDefault("DISCOVERY_AUTH_TOKEN", fc.AuthToken),
		SyncS3Bucket:   envOrDefault("DISCOVERY_SYNC_S3_BUCKET", fc.Sync.S3Bucket),
		SyncS3Endpoint: envOrDefault("DISCOVERY_SYNC_S3_ENDPOINT", fc.Sync.S3Endpoint),
		SyncS3Region:   envOrDefault("DISCOVERY_SYNC_S3_REGION", firstNonEmpty(fc.Sync.S3Region, "us-east-1")),
		SyncS3Key:      envOrDefault("DISCOVERY_SYNC_S3_KEY", firstNonEmpty(fc.Sync.S3Key, "discovery/backup.jsonl")),
		SyncGitRepo:    envOrDefault("DISCOVERY_SYNC_GIT_REPO", fc.Sync.GitRepo),
		SyncGitFile:    envOrDefault("DISCOVERY_SYNC_GIT_FILE", firstNonEmpty(fc.Sync.GitFile, "discovery.jsonl")),
		SyncGitBranch:  envOrDefault("DISCOVERY_SYNC_GIT_BRANCH", firstNonEmpty(fc.Sync.GitBranch, "main")),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DISCOVERY_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("DISCOVERY_SYNC_INTERVAL", firstNonEmpty(fc.Sync.Interval, "1h"))
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("DISCOVERY_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
