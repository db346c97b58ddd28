package config

import "time"

// Sort mode names accepted in dashboard.sortMode.
const (
	SortModeIP       = "ip"
	SortModeTimeLeft = "timeleft"
)

// Config is the top-level configuration.
type Config struct {
	Client    ClientConfig    `yaml:"client"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	GeoIP     GeoIPConfig     `yaml:"geoip"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ClientConfig describes how fail2ban-client is invoked.
type ClientConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	Sudo    *bool    `yaml:"sudo,omitempty"`
}

// DashboardConfig holds the interactive dashboard settings.
type DashboardConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`
	AutoRefresh     *bool         `yaml:"autoRefresh,omitempty"`
	SortMode        string        `yaml:"sortMode,omitempty"`
	Mouse           *bool         `yaml:"mouse,omitempty"`
}

// GeoIPConfig locates the optional MaxMind databases.
type GeoIPConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	DatabaseDirs []string `yaml:"databaseDirs,omitempty"`
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// UseSudo reports whether the client runs through "sudo -n".
func (c ClientConfig) UseSudo() bool { return c.Sudo != nil && *c.Sudo }

// AutoRefreshEnabled reports the effective auto-refresh flag.
func (d DashboardConfig) AutoRefreshEnabled() bool { return d.AutoRefresh == nil || *d.AutoRefresh }

// MouseEnabled reports whether mouse capture is on.
func (d DashboardConfig) MouseEnabled() bool { return d.Mouse == nil || *d.Mouse }

// IsEnabled reports whether GeoIP lookups are attempted.
func (g GeoIPConfig) IsEnabled() bool { return g.Enabled == nil || *g.Enabled }

// Bool returns a pointer to v, for building configs in code.
func Bool(v bool) *bool { return &v }
