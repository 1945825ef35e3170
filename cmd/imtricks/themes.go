package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imtricks/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and any found in ~/.config/imtricks/themes/.
The active theme is marked with an asterisk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := theme.ThemesDir()
		if err != nil {
			logger.Warn("user themes unavailable", "error", err)
			dir = ""
		}

		active := cfg.Theme.Name
		if active == "" {
			active = theme.DefaultThemeName
		}
		for _, name := range theme.NewLoader(dir, logger).List() {
			mark := " "
			if name == active {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
