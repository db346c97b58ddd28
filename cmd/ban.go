package cmd

import (
	"fmt"

	"f2bsentinel/internal/app"
	"f2bsentinel/internal/fail2ban"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban <jail> <ip>",
		Short: "Ban an address in a jail",
		Long: `Adds an address to the ban list of a jail with "set <jail> banip <ip>".
The address must be an IPv4 or IPv6 literal.`,
		Args: cobra.ExactArgs(2),
		RunE: runBan,
	}
}

func runBan(cmd *cobra.Command, args []string) error {
	jail := args[0]
	ip, err := fail2ban.ValidateAddress(args[1])
	if err != nil {
		return err
	}

	application, err := app.NewApplication(newAppConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Client().Ban(commandContext(cmd), jail, ip); err != nil {
		return fmt.Errorf("ban failed for %s: %s", ip, fail2ban.ErrorMessage(err))
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Banned %s in %s\n", ip, jail)
	return nil
}
