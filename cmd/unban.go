package cmd

import (
	"fmt"

	"f2bsentinel/internal/app"
	"f2bsentinel/internal/fail2ban"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newUnbanCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "unban <jail> <ip>... | unban --all <jail>",
		Short: "Remove addresses from the ban list of a jail",
		Long: fmt.Sprintf(`Removes the given addresses from a jail, or with --all every address the
jail currently bans. Addresses are sent in batches of %d; when a batch fails
the batches before it stay applied.`, fail2ban.UnbanBatchSize),
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runUnbanAll(cmd, args[0])
			}
			return runUnban(cmd, args[0], args[1:])
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Unban every address currently banned in the jail")
	return cmd
}

func runUnban(cmd *cobra.Command, jail string, addrs []string) error {
	ips := make([]string, 0, len(addrs))
	for _, a := range addrs {
		ip, err := fail2ban.ValidateAddress(a)
		if err != nil {
			return err
		}
		ips = append(ips, ip)
	}

	application, err := app.NewApplication(newAppConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	return unbanBatches(cmd, application.Client(), jail, ips)
}

func runUnbanAll(cmd *cobra.Command, jail string) error {
	application, err := app.NewApplication(newAppConfig())
	if err != nil {
		return err
	}
	defer application.Close()

	snap, err := application.Client().Fetch(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("fail2ban-client failed: %w", err)
	}
	j := snap.Jail(jail)
	if j == nil {
		return fmt.Errorf("jail not found: %s", jail)
	}
	if len(j.Bans) == 0 {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "No addresses to unban in %s\n", jail)
		return nil
	}
	return unbanBatches(cmd, application.Client(), jail, j.Addresses())
}

func unbanBatches(cmd *cobra.Command, client *fail2ban.Client, jail string, ips []string) error {
	removed, err := client.UnbanBatches(commandContext(cmd), jail, ips)
	if err != nil {
		if removed > 0 {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "Unbanned %d of %d addresses from %s\n", removed, len(ips), jail)
		}
		return fmt.Errorf("unban failed after %d removed: %s", removed, fail2ban.ErrorMessage(err))
	}

	ok := color.New(color.FgGreen)
	if len(ips) == 1 {
		ok.Fprintf(cmd.OutOrStdout(), "Unbanned %s from %s\n", ips[0], jail)
		return nil
	}
	ok.Fprintf(cmd.OutOrStdout(), "Unbanned %d addresses from %s\n", removed, jail)
	return nil
}
