package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// commandContext returns the command's context, or a background context
// when the command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
