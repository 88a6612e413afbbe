// ABOUTME: Budget input and result filter flags shared by calculate and check
// ABOUTME: Converts flag values into a combination request

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

// budgetFlags holds the flag values of one command
type budgetFlags struct {
	budget     float64
	apiPct     float64
	hostingPct float64
	users      int
	concurrent int
	minutes    int
	voiceAgent bool

	fitsOnly bool
	provider string
	limit    int
}

// addBudgetFlags registers budget flags on cmd, defaulting to the planner's defaults
func addBudgetFlags(cmd *cobra.Command, f *budgetFlags) {
	d := models.DefaultBudgetInput()
	flags := cmd.Flags()
	flags.Float64Var(&f.budget, "budget", d.MonthlyBudget, "Monthly budget in INR")
	flags.Float64Var(&f.apiPct, "api-pct", d.APIAllocationPct, "Percent of budget for avatar and voice APIs")
	flags.Float64Var(&f.hostingPct, "hosting-pct", d.HostingAllocationPct, "Percent of budget for hosting")
	flags.IntVar(&f.users, "users", d.Users, "Number of users")
	flags.IntVar(&f.concurrent, "concurrent", d.ConcurrentSessions, "Concurrent sessions")
	flags.IntVar(&f.minutes, "minutes", d.MinutesPerMonth, "Usage minutes per month")
	flags.BoolVar(&f.voiceAgent, "voice-agent", d.UseVoiceAgent, "Use a separate voice agent instead of inbuilt voice")
}

// addFilterFlags registers result filter flags on cmd
func addFilterFlags(cmd *cobra.Command, f *budgetFlags) {
	flags := cmd.Flags()
	flags.BoolVar(&f.fitsOnly, "fits-only", false, "Only show combinations within budget")
	flags.StringVar(&f.provider, "provider", "", "Only show plans from this provider (heygen, anam, tevus)")
	flags.IntVar(&f.limit, "limit", 0, "Maximum number of combinations to show (0 = all)")
}

func (f *budgetFlags) input() models.BudgetInput {
	return models.BudgetInput{
		MonthlyBudget:        f.budget,
		APIAllocationPct:     f.apiPct,
		HostingAllocationPct: f.hostingPct,
		Users:                f.users,
		ConcurrentSessions:   f.concurrent,
		MinutesPerMonth:      f.minutes,
		UseVoiceAgent:        f.voiceAgent,
	}
}

func (f *budgetFlags) request() models.CombinationRequest {
	return models.CombinationRequest{
		BudgetInput: f.input(),
		Filter: models.CombinationFilter{
			FitsBudgetOnly: f.fitsOnly,
			Provider:       pricing.Provider(f.provider),
			Limit:          f.limit,
		},
	}
}
