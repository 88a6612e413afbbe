// ABOUTME: Budget usage bar with visual threshold zones
// ABOUTME: Shows green/amber/red regions as spending approaches an allocation

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avatar-budget-analyzer/cli/internal/format"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width         int
	WarnThreshold float64 // Percentage where warning zone starts (default 80)
	CritThreshold float64 // Percentage where critical zone starts (default 100)
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
	ShowZones     bool // Show threshold markers in the bar
}

// DefaultProgressBarConfig returns defaults for budget usage
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:         20,
		WarnThreshold: 80,
		CritThreshold: 100,
		OKColor:       lipgloss.Color("#10B981"), // Green
		WarnColor:     lipgloss.Color("#F59E0B"), // Amber
		CritColor:     lipgloss.Color("#EF4444"), // Red
		EmptyColor:    lipgloss.Color("#374151"), // Dark gray
		ShowZones:     true,
	}
}

// ProgressBar renders a progress bar with threshold zones. Percentages
// outside 0..100 are clamped.
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	percent = min(max(percent, 0), 100)
	filled := min(int(percent/100.0*float64(config.Width)), config.Width)

	warnPos := int(config.WarnThreshold / 100.0 * float64(config.Width))
	critPos := int(config.CritThreshold / 100.0 * float64(config.Width))

	var bar strings.Builder
	bar.WriteString("[")

	for i := 0; i < config.Width; i++ {
		char := "░"
		color := config.EmptyColor

		if i < filled {
			char = "█"
			switch {
			case i >= critPos:
				color = config.CritColor
			case i >= warnPos:
				color = config.WarnColor
			default:
				color = config.OKColor
			}
		} else if config.ShowZones && i == warnPos {
			char = "│"
		}

		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(char))
	}

	bar.WriteString("]")
	return bar.String()
}

// BudgetBar renders spending against an allocation, e.g.
// "[████░░] 62% ✓ ₹62,000.00 of ₹100,000.00". Spending over the
// allocation fills the bar and reports the true percentage.
func BudgetBar(spent, budget float64, config ProgressBarConfig) string {
	percent := format.PercentOf(spent, budget)
	level := StatusFromPercent(percent, config.WarnThreshold, config.CritThreshold)
	// Spending exactly the allocation still fits
	if level == StatusCritical && spent <= budget {
		level = StatusWarning
	}

	var color lipgloss.Color
	var statusIcon string
	switch level {
	case StatusCritical:
		color, statusIcon = config.CritColor, "✗"
	case StatusWarning:
		color, statusIcon = config.WarnColor, "⚠"
	default:
		color, statusIcon = config.OKColor, "✓"
	}

	style := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s %s %s of %s",
		ProgressBar(percent, config),
		style.Render(fmt.Sprintf("%3.0f%%", percent)),
		style.Render(statusIcon),
		format.INR(spent),
		format.INR(budget))
}
