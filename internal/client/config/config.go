package config

import "time"

// Config holds runtime settings for the Pustaka CLI.
//
// Fields:
//   - EndpointURL: URL of the remote collection endpoint.
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - DownloadDir: directory attachment downloads are written to.
//   - AdminSecret: shared static secret gating deletes. A deterrent, not a
//     security boundary.
//   - ProvisionalTTL: how long a fresh local write is protected from being
//     clobbered by a stale remote read.
//   - RefetchDelay: pause between a push and the follow-up refresh.
//   - RefreshInterval: period of the background fetch/reconcile loop.
//   - PingInterval: period of the endpoint reachability probe.
//   - MaxImageWidth / JpegQuality: image bounding parameters for the remote
//     per-record size ceiling.
type Config struct {
	EndpointURL     string
	DatabaseDSN     string
	DownloadDir     string
	AdminSecret     string
	ProvisionalTTL  time.Duration
	RefetchDelay    time.Duration
	RefreshInterval time.Duration
	PingInterval    time.Duration
	MaxImageWidth   int
	JpegQuality     int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "pustaka.db"
	c.DownloadDir = "downloads"
	c.AdminSecret = "admin"
	c.ProvisionalTTL = 2 * time.Minute
	c.RefetchDelay = 5 * time.Second
	c.RefreshInterval = time.Minute
	c.PingInterval = 15 * time.Second
	c.MaxImageWidth = 1280
	c.JpegQuality = 80
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
