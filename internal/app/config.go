package app

import (
	"time"

	"f2bsentinel/internal/config"
)

// Config holds the command-line settings layered on top of the
// configuration files.
type Config struct {
	// ConfigPath is an explicit configuration file, applied last.
	ConfigPath string

	// Debug forces debug logging and debug lines in the activity log.
	Debug bool

	// LogFile mirrors every log entry to this file when set.
	LogFile string

	// Refresh overrides dashboard.refreshInterval when non-zero.
	Refresh time.Duration

	// NoAutoRefresh starts the dashboard with auto-refresh off.
	NoAutoRefresh bool

	// Settings is the merged configuration, filled in by NewApplication.
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, debug bool) *Config {
	return &Config{
		ConfigPath: configPath,
		Debug:      debug,
	}
}

// apply layers the flag overrides onto settings and validates the result.
func (c *Config) apply(settings config.Config) (config.Config, error) {
	if c.Refresh != 0 {
		settings.Dashboard.RefreshInterval = c.Refresh
	}
	if c.NoAutoRefresh {
		settings.Dashboard.AutoRefresh = config.Bool(false)
	}
	if c.Debug {
		settings.Logging.Level = "debug"
	}
	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}
