package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const githubRepoSlug = "f2bsentinel/f2bsentinel"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update f2bsentinel to the latest version",
		Long: `Checks for the latest release of f2bsentinel on GitHub and replaces the
running binary with it when it is newer.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current := rootCmd.Version
	if current == "" || current == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	ctx := context.Background()
	var out io.Writer = os.Stdout
	if cmd != nil {
		ctx = commandContext(cmd)
		out = cmd.OutOrStdout()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s could not be found in %s", current, githubRepoSlug)
	}
	if latest.LessOrEqual(current) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", current)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	fmt.Fprintf(out, "Updating %s to %s...\n", current, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}
