package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/smpn3pacet/pustaka/internal/flagx"
	"github.com/smpn3pacet/pustaka/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "2m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	EndpointURL     string         `json:"endpoint_url"`
	DatabaseDSN     string         `json:"database_dsn"`
	DownloadDir     string         `json:"download_dir"`
	AdminSecret     string         `json:"admin_secret"`
	ProvisionalTTL  timex.Duration `json:"provisional_ttl"`
	RefetchDelay    timex.Duration `json:"refetch_delay"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	PingInterval    timex.Duration `json:"ping_interval"`
	MaxImageWidth   int            `json:"max_image_width"`
	JpegQuality     int            `json:"jpeg_quality"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; zero values are skipped so
//     partial files only override what they name.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointURL != "" {
		cfg.EndpointURL = jc.EndpointURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.AdminSecret != "" {
		cfg.AdminSecret = jc.AdminSecret
	}
	if jc.ProvisionalTTL.Duration != 0 {
		cfg.ProvisionalTTL = time.Duration(jc.ProvisionalTTL.Duration)
	}
	if jc.RefetchDelay.Duration != 0 {
		cfg.RefetchDelay = time.Duration(jc.RefetchDelay.Duration)
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
	if jc.PingInterval.Duration != 0 {
		cfg.PingInterval = time.Duration(jc.PingInterval.Duration)
	}
	if jc.MaxImageWidth != 0 {
		cfg.MaxImageWidth = jc.MaxImageWidth
	}
	if jc.JpegQuality != 0 {
		cfg.JpegQuality = jc.JpegQuality
	}
}
