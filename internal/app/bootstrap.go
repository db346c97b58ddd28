package app

import (
	"context"
	"fmt"
	"os"

	"f2bsentinel/internal/config"
	"f2bsentinel/internal/enrich"
	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/pkg/logging"
)

const bootstrapSubsystem = "Bootstrap"

// For mocking in tests
var loadConfig = config.LoadConfig

// Application is a loaded configuration plus the services built from it.
type Application struct {
	config   *Config
	services *Services
	logFile  *os.File
}

// NewApplication loads the layered configuration, applies cfg's overrides
// and initializes the services. Logging goes to stderr so that stdout stays
// free for command output.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, os.Stderr)

	loaded, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error(bootstrapSubsystem, err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	settings, err := cfg.apply(loaded)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Settings = &settings
	logging.InitForCLI(logging.ParseLevel(settings.Logging.Level), os.Stderr)

	a := &Application{config: cfg}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		a.logFile = f
		logging.MirrorToFile(f)
	}

	a.services = InitializeServices(settings)
	logging.Debug(bootstrapSubsystem, "Using %s (sudo=%t)", settings.Client.Command, settings.Client.UseSudo())
	return a, nil
}

// Settings returns the merged configuration.
func (a *Application) Settings() config.Config {
	return *a.config.Settings
}

// Client returns the fail2ban client.
func (a *Application) Client() *fail2ban.Client {
	return a.services.Client
}

// Enricher returns the GeoIP enricher, nil when disabled.
func (a *Application) Enricher() *enrich.Enricher {
	return a.services.Enricher
}

// Run starts the interactive dashboard and blocks until it exits.
func (a *Application) Run(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}

// Close releases the services and stops mirroring to the log file.
func (a *Application) Close() {
	a.services.Close()
	if a.logFile != nil {
		logging.MirrorToFile(nil)
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
