package app

import (
	"context"

	"f2bsentinel/internal/color"
	"f2bsentinel/internal/tui/controller"
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/pkg/logging"
)

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, services *Services) error {
	logging.Info("CLI", "Starting TUI mode...")

	if !color.InitializeFromEnv() {
		color.Initialize(true)
	}

	settings := *cfg.Settings
	logLevel := logging.ParseLevel(settings.Logging.Level)
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	m := model.InitialModel(settings, services.Client, services.Enricher, logChan, logLevel == logging.LevelDebug)
	p := controller.NewProgram(ctx, m, settings.Dashboard.MouseEnabled())

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}
