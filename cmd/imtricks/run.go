package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imtricks/internal/ebitenhost"
	"github.com/jmylchreest/imtricks/internal/host"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the demo in a desktop window",
	Long: `Open the demo scene in a desktop window.

Key bindings:
  space       Toggle the fading box
  h           Toggle the header colour blend
  1-4         Raise a default, success, warning or danger toast
  q, esc      Quit`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	return withHost(func(ctx context.Context, hc *host.Context) error {
		return ebitenhost.Run(ctx, hc, cfg.Window, logger)
	})
}
