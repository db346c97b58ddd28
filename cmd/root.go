package cmd

import (
	"os"

	"f2bsentinel/internal/app"

	"github.com/spf13/cobra"
)

// Flags shared by every command that talks to fail2ban.
var (
	configPath string
	debug      bool
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "f2bsentinel",
	Short: "Terminal dashboard for fail2ban jails and bans",
	Long: `f2bsentinel shows the jails of a running fail2ban server and the addresses
they have banned, and lets you ban and unban addresses interactively.

Without a subcommand it starts the dashboard. The status, ban and unban
subcommands do the same work from scripts, and mcp exposes it to AI
assistants over stdio.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a failing fail2ban-client)
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDashboard,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "f2bsentinel version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newAppConfig builds the application configuration from the persistent
// flags.
func newAppConfig() *app.Config {
	cfg := app.NewConfig(configPath, debug)
	cfg.LogFile = logFile
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file applied on top of the user and project config")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write log entries to this file")
	addDashboardFlags(rootCmd)

	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newBanCmd())
	rootCmd.AddCommand(newUnbanCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
