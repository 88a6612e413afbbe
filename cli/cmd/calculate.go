// ABOUTME: Calculate command ranking combinations for a budget
// ABOUTME: Prints ranked combinations with cost breakdowns and warnings

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/format"
)

var calcFlags budgetFlags

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Rank combinations for a monthly budget",
	Long: `Rank every feasible avatar plan, voice agent, and hosting combination
for a monthly budget, best score first.

Example:
  avatar-budget calculate --budget 200000 --users 80 --minutes 5000 --voice-agent --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		b, err := newBackend()
		if err != nil {
			return err
		}
		return runCalculate(ctx, b, os.Stdout, calcFlags.request(), IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	addBudgetFlags(calculateCmd, &calcFlags)
	addFilterFlags(calculateCmd, &calcFlags)
}

func runCalculate(ctx context.Context, b client.Backend, w io.Writer, req models.CombinationRequest, jsonOut bool) error {
	resp, err := b.Combinations(ctx, req)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprint(w, formatCombinationsHuman(req.BudgetInput, resp))
	return nil
}

// formatCombinationsHuman renders ranked combinations as text
func formatCombinationsHuman(input models.BudgetInput, resp *models.CombinationsResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Budget:  %s/month\n", format.INR(input.MonthlyBudget))
	fmt.Fprintf(&sb, "API:     %s (%.0f%%)\n", format.INR(resp.Allocation.APIBudget), input.APIAllocationPct)
	fmt.Fprintf(&sb, "Hosting: %s (%.0f%%)\n", format.INR(resp.Allocation.HostingBudget), input.HostingAllocationPct)
	fmt.Fprintf(&sb, "Usage:   %s users, %s concurrent, %s\n\n",
		format.Count(input.Users), format.Count(input.ConcurrentSessions), format.Minutes(input.MinutesPerMonth))

	if len(resp.Combinations) == 0 {
		sb.WriteString("No valid combinations found for these requirements.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Showing %d of %d combinations\n", resp.Count, resp.Evaluated)

	for i, c := range resp.Combinations {
		sb.WriteString("\n")
		writeCombination(&sb, i+1, c)
	}

	return sb.String()
}

func writeCombination(sb *strings.Builder, rank int, c models.Combination) {
	fit := "✓ FITS"
	if !c.FitsBudget {
		fit = "✗ OVER"
	}

	fmt.Fprintf(sb, "%2d. %s  %s  %s/month  (score %.2f)\n", rank, fit, c.ID, format.INR(c.TotalCost), c.Score)
	fmt.Fprintf(sb, "    Avatar:  %-22s %s\n", c.AvatarPlan.Name, format.INR(c.Breakdown.AvatarCost))
	fmt.Fprintf(sb, "    Voice:   %-22s %s\n", c.VoiceLabel(), format.INR(c.Breakdown.VoiceCost))
	fmt.Fprintf(sb, "    Hosting: %-22s %s\n", c.HostingOption.Name, format.INR(c.Breakdown.HostingCost))
	fmt.Fprintf(sb, "    Misc:    %-22s %s\n", "", format.INR(c.Breakdown.MiscExpenses))

	for _, warning := range c.Warnings {
		fmt.Fprintf(sb, "    ⚠ %s\n", warning)
	}
}
