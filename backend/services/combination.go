// ABOUTME: Combination calculator for avatar, voice, and hosting budget analysis
// ABOUTME: Enumerates catalog triples, prices them, and ranks the feasible ones

package services

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

const (
	// AvgCallMinutes is the assumed length of one call when estimating call volume
	AvgCallMinutes = 10

	scoreFitsBudget    = 1000
	scoreAvatarCovered = 100
	scoreVoiceCovered  = 100
	scoreHasVoice      = 50
)

// CombinationCalculator ranks catalog combinations against a budget
type CombinationCalculator struct {
	catalog *pricing.Catalog
}

// NewCombinationCalculator creates a calculator over the given catalog.
// A nil catalog selects the embedded default.
func NewCombinationCalculator(catalog *pricing.Catalog) *CombinationCalculator {
	if catalog == nil {
		catalog = pricing.Default()
	}
	return &CombinationCalculator{catalog: catalog}
}

// Catalog returns the catalog the calculator prices against
func (c *CombinationCalculator) Catalog() *pricing.Catalog {
	return c.catalog
}

// Calculate returns every valid combination for the input, best score first.
// The result is never nil.
func (c *CombinationCalculator) Calculate(input models.BudgetInput) []models.Combination {
	alloc := models.AllocationFor(input)
	agents := c.catalog.VoiceAgents()

	combos := make([]models.Combination, 0)
	for _, plan := range c.catalog.AvatarPlans() {
		if plan.IsCustom() {
			continue
		}
		for _, hosting := range c.catalog.HostingOptions() {
			if !input.UseVoiceAgent {
				if combo, ok := c.evaluate(input, alloc, plan, nil, hosting); ok {
					combos = append(combos, combo)
				}
				continue
			}
			for i := range agents {
				if combo, ok := c.evaluate(input, alloc, plan, &agents[i], hosting); ok {
					combos = append(combos, combo)
				}
			}
		}
	}

	slices.SortStableFunc(combos, func(a, b models.Combination) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return combos
}

// evaluate prices one triple, reporting false when it fails validity
func (c *CombinationCalculator) evaluate(
	input models.BudgetInput,
	alloc models.Allocation,
	plan pricing.AvatarPlan,
	agent *pricing.VoiceAgent,
	hosting pricing.HostingOption,
) (models.Combination, bool) {
	if !IsValidCombination(input, plan, agent) {
		return models.Combination{}, false
	}

	breakdown := c.Breakdown(input, plan, agent, hosting)
	fits := breakdown.AvatarCost+breakdown.VoiceCost <= alloc.APIBudget &&
		breakdown.HostingCost <= alloc.HostingBudget

	// Each combination owns its copies of the catalog entries
	var voice *pricing.VoiceAgent
	if agent != nil {
		a := agent.Clone()
		voice = &a
	}

	combo := models.Combination{
		ID:            CombinationID(plan, agent, hosting),
		AvatarPlan:    plan.Clone(),
		VoiceAgent:    voice,
		HostingOption: hosting,
		TotalCost:     breakdown.TotalCost,
		Breakdown:     breakdown,
		FitsBudget:    fits,
	}
	combo.Warnings = GenerateCombinationWarnings(input, alloc, combo)
	combo.Score = ScoreCombination(input, combo)
	return combo, true
}

// Breakdown prices the avatar, voice, hosting, and misc components of a triple
func (c *CombinationCalculator) Breakdown(
	input models.BudgetInput,
	plan pricing.AvatarPlan,
	agent *pricing.VoiceAgent,
	hosting pricing.HostingOption,
) models.CostBreakdown {
	avatar := AvatarCost(plan, input.MinutesPerMonth)
	hostingDetail := HostingCost(hosting, input.Users, input.MinutesPerMonth)

	b := models.CostBreakdown{
		AvatarCost:   c.catalog.ToLocal(avatar.TotalUSD),
		HostingCost:  hostingDetail.Total,
		MiscExpenses: c.catalog.MiscMonthlyLocal(),
		Avatar:       avatar,
		Hosting:      hostingDetail,
	}
	if agent != nil {
		voice := VoiceCost(agent.Pricing, input.MinutesPerMonth)
		b.Voice = &voice
		b.VoiceCost = c.catalog.ToLocal(voice.TotalUSD)
	}
	b.TotalCost = b.AvatarCost + b.VoiceCost + b.HostingCost + b.MiscExpenses
	return b
}

// AvatarCost computes a plan's monthly USD cost including overage minutes
func AvatarCost(plan pricing.AvatarPlan, minutes int) models.AvatarCostDetail {
	additional := max(0, minutes-plan.IncludedMinutes)
	additionalUSD := float64(additional) * plan.AdditionalPerMinUSD

	return models.AvatarCostDetail{
		BaseUSD:           plan.MonthlyPriceUSD,
		IncludedMinutes:   plan.IncludedMinutes,
		AdditionalMinutes: additional,
		AdditionalUSD:     additionalUSD,
		TotalUSD:          plan.MonthlyPriceUSD + additionalUSD,
	}
}

// VoiceCost computes a voice agent's monthly USD cost. The per-minute base
// fee is added to usage, not treated as a minimum.
func VoiceCost(p pricing.VoicePricing, minutes int) models.VoiceCostDetail {
	switch v := p.(type) {
	case pricing.TokenPricing:
		tokens := float64(minutes) * v.TokensPerMinute
		usage := tokens / 1_000_000 * v.PricePer1MTokensUSD
		return models.VoiceCostDetail{
			PricingModel: pricing.ModelTokens,
			Tokens:       tokens,
			UsageUSD:     usage,
			TotalUSD:     usage,
		}
	case pricing.PerMinutePricing:
		usage := v.PricePerMinuteUSD * float64(minutes)
		return models.VoiceCostDetail{
			PricingModel: pricing.ModelPerMinute,
			BaseUSD:      v.MonthlyBaseUSD,
			UsageUSD:     usage,
			TotalUSD:     v.MonthlyBaseUSD + usage,
		}
	default:
		return models.VoiceCostDetail{}
	}
}

// HostingCost computes a hosting option's monthly local currency cost
func HostingCost(h pricing.HostingOption, users, minutes int) models.HostingCostDetail {
	usersCost := float64(users) * h.PerUserMonthlyLocal
	calls := float64(minutes) / AvgCallMinutes
	callsCost := calls * h.PerCallLocal

	return models.HostingCostDetail{
		Base:           h.BaseMonthlyLocal,
		UsersCost:      usersCost,
		EstimatedCalls: calls,
		CallsCost:      callsCost,
		Total:          h.BaseMonthlyLocal + usersCost + callsCost,
	}
}

// IsValidCombination applies the concurrency and inbuilt voice requirements
func IsValidCombination(input models.BudgetInput, plan pricing.AvatarPlan, agent *pricing.VoiceAgent) bool {
	if plan.Concurrency != nil && input.ConcurrentSessions > *plan.Concurrency {
		return false
	}
	if agent != nil {
		if limit := agent.Concurrency(); limit != nil && input.ConcurrentSessions > *limit {
			return false
		}
	}
	if !input.UseVoiceAgent && !plan.HasInbuiltVoice {
		return false
	}
	return true
}

// CombinationID joins the avatar, voice, and hosting ids
func CombinationID(plan pricing.AvatarPlan, agent *pricing.VoiceAgent, hosting pricing.HostingOption) string {
	voiceID := models.InbuiltVoiceID
	if agent != nil {
		voiceID = agent.ID
	}
	return fmt.Sprintf("%s-%s-%s", plan.ID, voiceID, hosting.ID)
}

// GenerateCombinationWarnings produces advisory warnings for a priced combination
func GenerateCombinationWarnings(input models.BudgetInput, alloc models.Allocation, combo models.Combination) []string {
	warnings := make([]string, 0)
	plan := combo.AvatarPlan

	if plan.Concurrency != nil && input.ConcurrentSessions > *plan.Concurrency {
		warnings = append(warnings, fmt.Sprintf(
			"Concurrent sessions (%d) exceed avatar plan limit (%d)",
			input.ConcurrentSessions, *plan.Concurrency))
	}

	if combo.VoiceAgent != nil {
		if limit := combo.VoiceAgent.Concurrency(); limit != nil && input.ConcurrentSessions > *limit {
			warnings = append(warnings, fmt.Sprintf(
				"Concurrent sessions (%d) exceed voice agent limit (%d)",
				input.ConcurrentSessions, *limit))
		}
	}

	// No users means no meaningful average
	if plan.MaxSessionMinutes != nil && input.Users > 0 {
		avg := float64(input.MinutesPerMonth) / float64(input.Users)
		if avg > float64(*plan.MaxSessionMinutes) {
			warnings = append(warnings, fmt.Sprintf(
				"Average session length may exceed plan limit (%d min)",
				*plan.MaxSessionMinutes))
		}
	}

	if apiCost := combo.APICost(); apiCost > alloc.APIBudget {
		warnings = append(warnings, fmt.Sprintf(
			"API cost (₹%.2f) exceeds allocated budget (₹%.2f)", apiCost, alloc.APIBudget))
	}

	if combo.Breakdown.HostingCost > alloc.HostingBudget {
		warnings = append(warnings, fmt.Sprintf(
			"Hosting cost (₹%.2f) exceeds allocated budget (₹%.2f)",
			combo.Breakdown.HostingCost, alloc.HostingBudget))
	}

	return warnings
}

// ScoreCombination rates a combination; higher is better
func ScoreCombination(input models.BudgetInput, combo models.Combination) float64 {
	var score float64

	if combo.FitsBudget {
		score += scoreFitsBudget
	}

	score -= combo.TotalCost / 100

	if limit := combo.AvatarPlan.Concurrency; limit == nil || *limit >= input.ConcurrentSessions {
		score += scoreAvatarCovered
	}

	if combo.VoiceAgent != nil {
		if limit := combo.VoiceAgent.Concurrency(); limit != nil && *limit >= input.ConcurrentSessions {
			score += scoreVoiceCovered
		}
	}

	if combo.VoiceAgent != nil || combo.AvatarPlan.HasInbuiltVoice {
		score += scoreHasVoice
	}

	return score
}
