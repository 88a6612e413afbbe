// ABOUTME: Plan command launching the interactive budget planner
// ABOUTME: Collects budget input with a form and browses ranked results

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Interactive budget planner",
	Long: `Open an interactive planner: enter a budget and usage, then browse ranked
combinations. Press f to toggle budget-fitting results, r to start over, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBackend()
		if err != nil {
			return err
		}
		return tui.Run(b, backendLabel())
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
