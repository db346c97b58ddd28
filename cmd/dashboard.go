package cmd

import (
	"fmt"
	"time"

	"f2bsentinel/internal/app"

	"github.com/spf13/cobra"
)

var (
	dashboardRefresh       time.Duration
	dashboardNoAutoRefresh bool
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the interactive dashboard",
		Long: `Starts the full-screen dashboard. The jail list, the banned addresses of
the selected jail and their details refresh every few seconds.

Press ? inside the dashboard for the key bindings.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
	addDashboardFlags(cmd)
	return cmd
}

func addDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&dashboardRefresh, "refresh", 0, "Auto-refresh interval (default from config, 5s)")
	cmd.Flags().BoolVar(&dashboardNoAutoRefresh, "no-auto-refresh", false, "Start with auto-refresh turned off")
}

// runDashboard is the entry point of the root and dashboard commands.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := newAppConfig()
	cfg.Refresh = dashboardRefresh
	cfg.NoAutoRefresh = dashboardNoAutoRefresh

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	return application.Run(commandContext(cmd))
}
