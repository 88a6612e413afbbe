// ABOUTME: Voice preview command quoting every voice agent for a minute count
// ABOUTME: Mirrors the per-agent cost hints shown next to the minutes input

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

var previewMinutes int

var voicePreviewCmd = &cobra.Command{
	Use:   "voice-preview",
	Short: "Quote every voice agent for a monthly minute count",
	Long: `Show the monthly cost of each voice agent for a number of usage minutes.

Example:
  avatar-budget voice-preview --minutes 3500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		b, err := newBackend()
		if err != nil {
			return err
		}
		return runVoicePreview(ctx, b, os.Stdout, previewMinutes, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(voicePreviewCmd)
	voicePreviewCmd.Flags().IntVar(&previewMinutes, "minutes", models.DefaultBudgetInput().MinutesPerMonth, "Usage minutes per month")
}

func runVoicePreview(ctx context.Context, b client.Backend, w io.Writer, minutes int, jsonOut bool) error {
	resp, err := b.VoicePreview(ctx, minutes)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintln(w, formatVoicePreviewHuman(resp))
	return nil
}

// formatVoicePreviewHuman renders one table row per voice agent
func formatVoicePreviewHuman(resp *models.VoicePreviewResponse) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("VOICE AGENT", "MODEL", "USAGE", "USD", "INR", "CONCURRENCY")

	for _, q := range resp.Quotes {
		t.Row(
			q.VoiceAgent.Name,
			string(q.VoiceAgent.PricingModel()),
			voiceUsage(q),
			format.USD(q.CostUSD),
			format.INR(q.CostLocal),
			format.Limit(q.Concurrency),
		)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Voice agent cost for %s/month\n", format.Minutes(resp.Minutes))
	sb.WriteString(t.String())
	return sb.String()
}

// voiceUsage describes what the quote is billed on
func voiceUsage(q models.VoiceQuote) string {
	if q.VoiceAgent.PricingModel() == pricing.ModelTokens {
		return format.Tokens(q.Detail.Tokens)
	}
	if q.Detail.BaseUSD > 0 {
		return format.Minutes(q.Minutes) + " + base"
	}
	return format.Minutes(q.Minutes)
}
