// ABOUTME: Check command for avatar-budget CLI
// ABOUTME: Gates CI/CD pipelines on whether any combination fits the budget

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/format"
)

var checkFlags budgetFlags

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the budget covers at least one combination",
	Long: `Check whether any valid combination fits the budget and exit non-zero if none does.

Exit codes:
  0 - At least one combination fits the budget
  1 - No combination fits the budget
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addBudgetFlags(checkCmd, &checkFlags)
}

// checkResult summarizes how the ranked combinations relate to the budget
type checkResult struct {
	evaluated int
	fitting   int
	best      *models.Combination // best fitting, or best overall when none fits
	budget    float64
}

// runCheck executes the budget check and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	b, err := newBackend()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return runCheckWith(ctx, b, w, checkFlags.input())
}

func runCheckWith(ctx context.Context, b client.Backend, w io.Writer, input models.BudgetInput) int {
	resp, err := b.Combinations(ctx, models.CombinationRequest{BudgetInput: input})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	result := summarizeCheck(input, resp.Combinations)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(result))
	} else {
		fmt.Fprintln(w, formatCheckHuman(result))
	}

	if result.fitting == 0 {
		return 1
	}
	return 0
}

// summarizeCheck counts fitting combinations in a ranked list
func summarizeCheck(input models.BudgetInput, combos []models.Combination) checkResult {
	result := checkResult{evaluated: len(combos), budget: input.MonthlyBudget}

	for i := range combos {
		if combos[i].FitsBudget {
			if result.fitting == 0 {
				result.best = &combos[i]
			}
			result.fitting++
		}
	}
	if result.best == nil && len(combos) > 0 {
		result.best = &combos[0]
	}
	return result
}

// formatCheckHuman formats the check result for human readability
func formatCheckHuman(r checkResult) string {
	if r.evaluated == 0 {
		return "✗ No valid combinations for these requirements\n\nFAILED: nothing to fit within " + format.INR(r.budget)
	}

	if r.fitting == 0 {
		return fmt.Sprintf("✗ 0 of %d combination(s) fit the budget\n  Closest: %s at %s/month\n\nFAILED: no combination fits within %s",
			r.evaluated, r.best.ID, format.INR(r.best.TotalCost), format.INR(r.budget))
	}

	return fmt.Sprintf("✓ %d of %d combination(s) fit the budget\n  Best: %s at %s/month\n\nPASSED: budget covers at least one combination",
		r.fitting, r.evaluated, r.best.ID, format.INR(r.best.TotalCost))
}

// formatCheckJSON formats the check result as JSON
func formatCheckJSON(r checkResult) string {
	status := "passed"
	if r.fitting == 0 {
		status = "failed"
	}

	output := map[string]any{
		"status":    status,
		"evaluated": r.evaluated,
		"fitting":   r.fitting,
		"budget":    r.budget,
	}
	if r.best != nil {
		output["best"] = map[string]any{
			"id":          r.best.ID,
			"total_cost":  r.best.TotalCost,
			"fits_budget": r.best.FitsBudget,
		}
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
