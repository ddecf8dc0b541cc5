// Package config loads the persisted engine settings from the environment.
// The core reads these values and never writes them back.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings is the flat knob set consumed across the engine.
type Settings struct {
	// PrioritizeUsage prefers usage-statistics presets over non-owned format
	// presets during resolution.
	PrioritizeUsage bool `env:"CALCDEX_PRIORITIZE_USAGE" envDefault:"false"`
	// AutoImportSheets applies open-team-sheet presets as they are revealed.
	AutoImportSheets bool `env:"CALCDEX_AUTO_IMPORT_SHEETS" envDefault:"true"`
	// DefaultLevel overrides the format-derived default level when positive.
	DefaultLevel int `env:"CALCDEX_DEFAULT_LEVEL" envDefault:"0"`

	// CachePath locates the sqlite preset cache.
	CachePath string `env:"CALCDEX_CACHE_PATH" envDefault:"calcdex-cache.db"`
	// CacheMaxStaleness bounds how old a cached preset pool may be before it
	// counts as a miss.
	CacheMaxStaleness time.Duration `env:"CALCDEX_CACHE_MAX_STALENESS" envDefault:"168h"`
	// CatalogPath points at the authored preset file; empty uses the
	// canonical locations.
	CatalogPath string `env:"CALCDEX_CATALOG_PATH" envDefault:""`

	// FeedURL is the websocket endpoint serving simulator snapshot frames.
	FeedURL string `env:"CALCDEX_FEED_URL" envDefault:"ws://127.0.0.1:8000/feed"`
	// ListenAddr is where the patch broadcast hub serves subscribers.
	ListenAddr string `env:"CALCDEX_LISTEN_ADDR" envDefault:":8790"`

	// LogSinks names the enabled diagnostic sinks (console, json, memory).
	LogSinks []string `env:"CALCDEX_LOG_SINKS" envSeparator:"," envDefault:"console"`
	// LogJSONPath is the target file for the json sink.
	LogJSONPath string `env:"CALCDEX_LOG_JSON_PATH" envDefault:"calcdex-events.jsonl"`
	// LogMinSeverity drops events below this severity at the router.
	LogMinSeverity string `env:"CALCDEX_LOG_MIN_SEVERITY" envDefault:"info"`
	// LogBufferSize is the router's event channel depth.
	LogBufferSize int `env:"CALCDEX_LOG_BUFFER" envDefault:"256"`
}

// Load parses Settings from the environment.
func Load() (Settings, error) {
	var cfg Settings
	if err := env.Parse(&cfg); err != nil {
		return Settings{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.CacheMaxStaleness <= 0 {
		return Settings{}, fmt.Errorf("config: cache max staleness must be positive")
	}
	if cfg.LogBufferSize <= 0 {
		return Settings{}, fmt.Errorf("config: log buffer size must be positive")
	}
	return cfg, nil
}
