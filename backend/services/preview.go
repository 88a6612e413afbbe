// ABOUTME: Voice agent cost preview for a given monthly usage
// ABOUTME: Uses the same voice pricing as the combination calculator

package services

import (
	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

// PreviewVoiceCosts quotes every voice agent in catalog order for the given minutes
func PreviewVoiceCosts(catalog *pricing.Catalog, minutes int) []models.VoiceQuote {
	agents := catalog.VoiceAgents()
	quotes := make([]models.VoiceQuote, 0, len(agents))

	for _, agent := range agents {
		detail := VoiceCost(agent.Pricing, minutes)
		quotes = append(quotes, models.VoiceQuote{
			VoiceAgent:  agent,
			Minutes:     minutes,
			Detail:      detail,
			CostUSD:     detail.TotalUSD,
			CostLocal:   catalog.ToLocal(detail.TotalUSD),
			Concurrency: agent.Concurrency(),
		})
	}
	return quotes
}
