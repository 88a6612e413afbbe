// ABOUTME: API response envelopes for the budget analyzer endpoints
// ABOUTME: JSON-serializable structures shared by the backend and the CLI client

package models

import (
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

// CombinationsResponse is the body returned by POST /api/v1/combinations
type CombinationsResponse struct {
	Allocation   Allocation    `json:"allocation"`
	Count        int           `json:"count"`
	Evaluated    int           `json:"evaluated"` // feasible results before filtering
	Combinations []Combination `json:"combinations"`
	Metadata     Metadata      `json:"metadata"`
}

// CatalogResponse is the body returned by GET /api/v1/catalog
type CatalogResponse struct {
	LocalCurrency    string                  `json:"local_currency"`
	USDToLocalRate   float64                 `json:"usd_to_local_rate"`
	MiscMonthlyLocal float64                 `json:"misc_monthly_local"`
	AvatarPlans      []pricing.AvatarPlan    `json:"avatar_plans"`
	VoiceAgents      []pricing.VoiceAgent    `json:"voice_agents"`
	HostingOptions   []pricing.HostingOption `json:"hosting_options"`
}

// NewCatalogResponse snapshots a catalog for serialization
func NewCatalogResponse(c *pricing.Catalog) CatalogResponse {
	return CatalogResponse{
		LocalCurrency:    pricing.LocalCurrency,
		USDToLocalRate:   c.USDToLocalRate(),
		MiscMonthlyLocal: c.MiscMonthlyLocal(),
		AvatarPlans:      c.AvatarPlans(),
		VoiceAgents:      c.VoiceAgents(),
		HostingOptions:   c.HostingOptions(),
	}
}

// VoicePreviewResponse is the body returned by GET /api/v1/voice/preview
type VoicePreviewResponse struct {
	Minutes int          `json:"minutes"`
	Quotes  []VoiceQuote `json:"quotes"`
}

// HealthResponse is the body returned by GET /api/v1/health
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogSource  string `json:"catalog_source"` // "embedded" or a file path
	AvatarPlans    int    `json:"avatar_plans"`
	VoiceAgents    int    `json:"voice_agents"`
	HostingOptions int    `json:"hosting_options"`
	CachedResults  int    `json:"cached_results"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
