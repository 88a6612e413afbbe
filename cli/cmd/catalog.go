// ABOUTME: Catalog command printing the pricing catalog in use
// ABOUTME: Renders avatar plans, voice agents, and hosting options as tables

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

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/format"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the pricing catalog",
	Long:  `Show every avatar plan, voice agent, and hosting option with the currency constants used for pricing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		b, err := newBackend()
		if err != nil {
			return err
		}
		return runCatalog(ctx, b, os.Stdout, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(ctx context.Context, b client.Backend, w io.Writer, jsonOut bool) error {
	resp, err := b.Catalog(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintln(w, formatCatalogHuman(resp))
	return nil
}

// formatCatalogHuman renders the catalog as three tables
func formatCatalogHuman(c *models.CatalogResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "1 USD = %.2f %s, misc expenses %s/month\n\n",
		c.USDToLocalRate, c.LocalCurrency, format.INR(c.MiscMonthlyLocal))

	plans := newCatalogTable("AVATAR PLAN", "PROVIDER", "USD/MONTH", "INCLUDED", "MAX SESSION", "CONCURRENCY", "OVERAGE/MIN")
	for _, p := range c.AvatarPlans {
		price := format.USD(p.MonthlyPriceUSD)
		if p.IsCustom() {
			price = "custom"
		}
		plans.Row(p.Name, string(p.Provider), price, format.Minutes(p.IncludedMinutes),
			sessionLimit(p.MaxSessionMinutes), format.Limit(p.Concurrency), format.USD(p.AdditionalPerMinUSD))
	}
	sb.WriteString(plans.String())
	sb.WriteString("\n\n")

	agents := newCatalogTable("VOICE AGENT", "MODEL", "PRICE", "MONTHLY BASE", "CONCURRENCY")
	for _, a := range c.VoiceAgents {
		price, base := voicePrice(a.Pricing)
		agents.Row(a.Name, string(a.PricingModel()), price, base, format.Limit(a.Concurrency()))
	}
	sb.WriteString(agents.String())
	sb.WriteString("\n\n")

	hosting := newCatalogTable("HOSTING", "BASE/MONTH", "PER USER", "PER CALL", "STORAGE")
	for _, h := range c.HostingOptions {
		hosting.Row(h.Name, format.INR(h.BaseMonthlyLocal), format.INR(h.PerUserMonthlyLocal),
			format.INR(h.PerCallLocal), fmt.Sprintf("%d GB", h.StorageGB))
	}
	sb.WriteString(hosting.String())

	return sb.String()
}

func newCatalogTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func sessionLimit(minutes *int) string {
	if minutes == nil {
		return "unlimited"
	}
	return format.Minutes(*minutes)
}

// voicePrice describes a voice pricing variant as (price, monthly base)
func voicePrice(p pricing.VoicePricing) (string, string) {
	switch v := p.(type) {
	case pricing.TokenPricing:
		return fmt.Sprintf("%s/1M tokens, %.0f tokens/min", format.USD(v.PricePer1MTokensUSD), v.TokensPerMinute), "-"
	case pricing.PerMinutePricing:
		base := "-"
		if v.MonthlyBaseUSD > 0 {
			base = format.USD(v.MonthlyBaseUSD)
		}
		return format.USD(v.PricePerMinuteUSD) + "/min", base
	default:
		return "-", "-"
	}
}
