package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/f2bsentinel"
	projectConfigDir = ".f2bsentinel"
	configFileName   = "config.yaml"

	// MinRefreshInterval bounds the auto-refresh period from below.
	MinRefreshInterval     = time.Second
	DefaultRefreshInterval = 5 * time.Second
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		Client: ClientConfig{
			Command: "fail2ban-client",
			Sudo:    Bool(false),
		},
		Dashboard: DashboardConfig{
			RefreshInterval: DefaultRefreshInterval,
			AutoRefresh:     Bool(true),
			SortMode:        SortModeIP,
			Mouse:           Bool(true),
		},
		GeoIP: GeoIPConfig{
			Enabled:      Bool(true),
			DatabaseDirs: []string{"/usr/share/GeoIP", "/var/lib/GeoIP"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig layers the default, user and project configuration, then the
// explicit file if explicitPath is not empty. A missing explicit file is an
// error; missing user or project files are skipped.
func LoadConfig(explicitPath string) (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if config, err = overlayIfExists(config, userConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if config, err = overlayIfExists(config, projectConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	if explicitPath != "" {
		explicit, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, explicit)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func overlayIfExists(base Config, path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Only fields set
// in the overlay take effect.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.Client.Command != "" {
		merged.Client.Command = overlay.Client.Command
	}
	if overlay.Client.Args != nil {
		merged.Client.Args = append([]string(nil), overlay.Client.Args...)
	}
	if overlay.Client.Sudo != nil {
		merged.Client.Sudo = overlay.Client.Sudo
	}

	if overlay.Dashboard.RefreshInterval != 0 {
		merged.Dashboard.RefreshInterval = overlay.Dashboard.RefreshInterval
	}
	if overlay.Dashboard.AutoRefresh != nil {
		merged.Dashboard.AutoRefresh = overlay.Dashboard.AutoRefresh
	}
	if overlay.Dashboard.SortMode != "" {
		merged.Dashboard.SortMode = overlay.Dashboard.SortMode
	}
	if overlay.Dashboard.Mouse != nil {
		merged.Dashboard.Mouse = overlay.Dashboard.Mouse
	}

	if overlay.GeoIP.Enabled != nil {
		merged.GeoIP.Enabled = overlay.GeoIP.Enabled
	}
	if overlay.GeoIP.DatabaseDirs != nil {
		merged.GeoIP.DatabaseDirs = append([]string(nil), overlay.GeoIP.DatabaseDirs...)
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	return merged
}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	if c.Dashboard.RefreshInterval < MinRefreshInterval {
		return fmt.Errorf("dashboard.refreshInterval must be at least %s, got %s", MinRefreshInterval, c.Dashboard.RefreshInterval)
	}
	switch strings.ToLower(c.Dashboard.SortMode) {
	case SortModeIP, SortModeTimeLeft:
	default:
		return fmt.Errorf("dashboard.sortMode must be %q or %q, got %q", SortModeIP, SortModeTimeLeft, c.Dashboard.SortMode)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
