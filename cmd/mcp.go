package cmd

import (
	"f2bsentinel/internal/app"
	"f2bsentinel/internal/mcpserver"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the fail2ban tools to AI assistants over stdio",
		Long: `Runs a Model Context Protocol server on stdin and stdout. It offers the
tools list_jails, get_jail, ban_ip and unban_ip. Logs go to stderr.

Example assistant configuration:
  {"command": "f2bsentinel", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	application, err := app.NewApplication(newAppConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	srv := mcpserver.New(application.Client(), rootCmd.Version)
	return srv.Serve(commandContext(cmd), cmd.InOrStdin(), cmd.OutOrStdout())
}
