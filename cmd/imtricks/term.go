package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imtricks/internal/host"
	"github.com/jmylchreest/imtricks/internal/termhost"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the demo inside the terminal",
	Long: `Run the demo scene inside the terminal.

Each cell stands in for a 7x13 pixel block, so toast sizes from the
config file keep their proportions. Rounded corners are not drawn.`,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	return withHost(func(ctx context.Context, hc *host.Context) error {
		return termhost.Run(ctx, hc, logger)
	})
}
