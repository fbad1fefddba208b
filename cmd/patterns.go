package cmd

import (
	"fmt"
	"strings"

	"github.com/codeforge/challengegen/internal/patterns"
	"github.com/codeforge/challengegen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [level]",
	Short: "List seniority levels or the patterns for one level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, level := range patterns.Levels() {
				fmt.Fprintln(out, theme.Title.Render(level))
				for _, p := range patterns.ForLevel(level) {
					fmt.Fprintf(out, "  %s %s\n", theme.Bullet.Render("•"), p)
				}
			}
			return nil
		}

		level := args[0]
		if !patterns.IsLevel(level) {
			return fmt.Errorf("unknown level %q (choose one of: %s)", level, strings.Join(patterns.Levels(), ", "))
		}
		for _, p := range patterns.ForLevel(level) {
			fmt.Fprintf(out, "%s %s\n", theme.Bullet.Render("•"), p)
		}
		return nil
	},
}
