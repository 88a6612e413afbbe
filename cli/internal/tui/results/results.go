// ABOUTME: Ranked combination browser for the interactive planner
// ABOUTME: Shows a budget summary above a scrollable list of combinations

package results

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/format"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/icons"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/styles"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/widgets"
)

const (
	minBarWidth   = 10
	maxBarWidth   = 30
	sparkMaxWidth = 40
)

// Results displays one CombinationsResponse
type Results struct {
	input    models.BudgetInput
	resp     *models.CombinationsResponse
	fitsOnly bool
	viewport viewport.Model
	width    int
	height   int
}

// New creates a results view sized to width x height
func New(input models.BudgetInput, resp *models.CombinationsResponse, width, height int) *Results {
	r := &Results{
		input:    input,
		resp:     resp,
		viewport: viewport.New(width, height),
	}
	r.SetSize(width, height)
	return r
}

// SetSize resizes the view and re-renders the list
func (r *Results) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = max(height-lipgloss.Height(r.renderSummary()), 1)
	r.viewport.SetContent(r.renderList())
}

// FitsOnly reports whether over-budget combinations are hidden
func (r *Results) FitsOnly() bool {
	return r.fitsOnly
}

// Visible returns the combinations currently listed, in rank order
func (r *Results) Visible() []models.Combination {
	return services.FilterCombinations(r.resp.Combinations, models.CombinationFilter{FitsBudgetOnly: r.fitsOnly})
}

// Fitting counts combinations within budget
func (r *Results) Fitting() int {
	n := 0
	for _, c := range r.resp.Combinations {
		if c.FitsBudget {
			n++
		}
	}
	return n
}

// Init implements tea.Model
func (r *Results) Init() tea.Cmd {
	return nil
}

// Update handles the filter toggle and forwards scrolling to the viewport
func (r *Results) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "f" {
		r.fitsOnly = !r.fitsOnly
		r.SetSize(r.width, r.height)
		r.viewport.GotoTop()
		return r, nil
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View implements tea.Model
func (r *Results) View() string {
	return r.renderSummary() + "\n" + r.viewport.View()
}

// renderSummary renders the counts and budget bars for the best visible combination
func (r *Results) renderSummary() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s/month  %s API %.0f%%  %s Hosting %.0f%%",
		icons.Budget.String(), format.INR(r.input.MonthlyBudget),
		icons.Avatar.String(), r.input.APIAllocationPct,
		icons.Hosting.String(), r.input.HostingAllocationPct)))
	sb.WriteString("\n")

	visible := r.Visible()
	filter := "all"
	if r.fitsOnly {
		filter = "within budget"
	}
	fmt.Fprintf(&sb, "%d evaluated  %s  showing %d (%s)\n",
		r.resp.Evaluated,
		widgets.StatusText(fmt.Sprintf("%d fit budget", r.Fitting()), fitLevel(r.Fitting())),
		len(visible), filter)

	if len(r.resp.Combinations) > 1 {
		totals := make([]float64, len(r.resp.Combinations))
		for i, c := range r.resp.Combinations {
			totals[i] = c.TotalCost
		}
		fmt.Fprintf(&sb, "%s %s %s\n",
			styles.Subtitle.Render(icons.Chart.String()+" totals by rank"),
			widgets.Sparkline(totals, min(len(totals), sparkMaxWidth), styles.Accent),
			styles.Subtitle.Render(format.INR(slices.Min(totals))+" to "+format.INR(slices.Max(totals))))
	}

	if len(visible) == 0 {
		return sb.String()
	}

	best := visible[0]
	cfg := widgets.DefaultProgressBarConfig()
	cfg.Width = min(max(r.width-60, minBarWidth), maxBarWidth)

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Best: %s\n", styles.ValueStyle.Render(best.ID))
	fmt.Fprintf(&sb, "%s%s\n", styles.LabelStyle.Render("API"), widgets.BudgetBar(best.APICost(), r.resp.Allocation.APIBudget, cfg))
	fmt.Fprintf(&sb, "%s%s\n", styles.LabelStyle.Render("Hosting"), widgets.BudgetBar(best.Breakdown.HostingCost, r.resp.Allocation.HostingBudget, cfg))

	return sb.String()
}

// renderList renders every visible combination
func (r *Results) renderList() string {
	visible := r.Visible()
	if len(visible) == 0 {
		if len(r.resp.Combinations) == 0 {
			return styles.StatusWarning.Render("No valid combinations found for these requirements.")
		}
		return styles.StatusWarning.Render("No combination fits the budget. Press f to show all.")
	}

	var sb strings.Builder
	for i, c := range visible {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeCombination(&sb, i+1, c)
	}
	return sb.String()
}

func writeCombination(sb *strings.Builder, rank int, c models.Combination) {
	fmt.Fprintf(sb, "%s%s %s  %s  %s\n",
		styles.RankStyle.Render(fmt.Sprintf("%d.", rank)),
		widgets.FitBadge(c.FitsBudget),
		styles.ValueStyle.Render(c.ID),
		styles.CostStyle.Render(format.INR(c.TotalCost)+"/month"),
		styles.Subtitle.Render(fmt.Sprintf("score %.2f", c.Score)))

	writeComponent(sb, icons.Avatar, c.AvatarPlan.Name, c.Breakdown.AvatarCost)
	writeComponent(sb, icons.Voice, c.VoiceLabel(), c.Breakdown.VoiceCost)
	writeComponent(sb, icons.Hosting, c.HostingOption.Name, c.Breakdown.HostingCost)
	writeComponent(sb, icons.Misc, "Misc", c.Breakdown.MiscExpenses)

	for _, w := range c.Warnings {
		fmt.Fprintf(sb, "    %s\n", widgets.StatusText(w, widgets.StatusWarning))
	}
}

func writeComponent(sb *strings.Builder, icon icons.Icon, name string, cost float64) {
	fmt.Fprintf(sb, "    %s %-22s %s\n", icon.String(), name, format.INR(cost))
}

func fitLevel(fitting int) widgets.StatusLevel {
	if fitting == 0 {
		return widgets.StatusCritical
	}
	return widgets.StatusOK
}
