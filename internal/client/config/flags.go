package config

import (
	"flag"
	"os"
	"time"

	"github.com/smpn3pacet/pustaka/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   URL of the remote collection endpoint
//	-d string   path of the local SQLite database
//	-o string   download directory for attachments
//	-s string   admin secret gating deletes
//	-r int      background refresh interval in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-o", "-s", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointURL, "a", cfg.EndpointURL, "URL of the remote collection endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local database")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory for attachments")
	fs.StringVar(&cfg.AdminSecret, "s", cfg.AdminSecret, "admin secret gating deletes")
	refreshInterval := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "background refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
}
