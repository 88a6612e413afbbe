// ABOUTME: Data models for priced avatar/voice/hosting combinations
// ABOUTME: Includes the per-component cost breakdown attached to each result

package models

import (
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

// InbuiltVoiceID stands in for the voice agent segment of a combination ID
// when the avatar plan's own voice is used.
const InbuiltVoiceID = "inbuilt"

// Combination is one fully priced (avatar, voice-or-none, hosting) triple
type Combination struct {
	ID            string                `json:"id"`
	AvatarPlan    pricing.AvatarPlan    `json:"avatar_plan"`
	VoiceAgent    *pricing.VoiceAgent   `json:"voice_agent,omitempty"`
	HostingOption pricing.HostingOption `json:"hosting_option"`
	TotalCost     float64               `json:"total_cost"` // local currency
	Breakdown     CostBreakdown         `json:"breakdown"`
	FitsBudget    bool                  `json:"fits_budget"`
	Score         float64               `json:"score"` // higher is better
	Warnings      []string              `json:"warnings"`
}

// APICost returns the avatar plus voice cost in local currency
func (c *Combination) APICost() float64 {
	return c.Breakdown.AvatarCost + c.Breakdown.VoiceCost
}

// VoiceLabel returns the voice agent name or a marker for inbuilt voice
func (c *Combination) VoiceLabel() string {
	if c.VoiceAgent == nil {
		return "Inbuilt (Avatar)"
	}
	return c.VoiceAgent.Name
}

// CostBreakdown holds local currency totals per component plus their decomposition
type CostBreakdown struct {
	AvatarCost   float64 `json:"avatar_cost"`
	VoiceCost    float64 `json:"voice_cost"`
	HostingCost  float64 `json:"hosting_cost"`
	MiscExpenses float64 `json:"misc_expenses"`
	TotalCost    float64 `json:"total_cost"`

	Avatar  AvatarCostDetail  `json:"avatar"`
	Voice   *VoiceCostDetail  `json:"voice,omitempty"` // nil with inbuilt voice
	Hosting HostingCostDetail `json:"hosting"`
}

// AvatarCostDetail decomposes the avatar plan cost in USD
type AvatarCostDetail struct {
	BaseUSD           float64 `json:"base_usd"`
	IncludedMinutes   int     `json:"included_minutes"`
	AdditionalMinutes int     `json:"additional_minutes"`
	AdditionalUSD     float64 `json:"additional_usd"`
	TotalUSD          float64 `json:"total_usd"`
}

// VoiceCostDetail decomposes the voice agent cost in USD
type VoiceCostDetail struct {
	PricingModel pricing.PricingModel `json:"pricing_model"`
	Tokens       float64              `json:"tokens,omitempty"` // tokens model only
	BaseUSD      float64              `json:"base_usd"`
	UsageUSD     float64              `json:"usage_usd"`
	TotalUSD     float64              `json:"total_usd"`
}

// HostingCostDetail decomposes the hosting cost in local currency
type HostingCostDetail struct {
	Base           float64 `json:"base"`
	UsersCost      float64 `json:"users_cost"`
	EstimatedCalls float64 `json:"estimated_calls"` // minutes / average call length
	CallsCost      float64 `json:"calls_cost"`
	Total          float64 `json:"total"`
}

// VoiceQuote is the monthly cost of one voice agent for a given usage
type VoiceQuote struct {
	VoiceAgent  pricing.VoiceAgent `json:"voice_agent"`
	Minutes     int                `json:"minutes"`
	Detail      VoiceCostDetail    `json:"detail"`
	CostUSD     float64            `json:"cost_usd"`
	CostLocal   float64            `json:"cost_local"`
	Concurrency *int               `json:"concurrency,omitempty"`
}
