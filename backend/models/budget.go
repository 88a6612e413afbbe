// ABOUTME: Data models for budget input and result filtering
// ABOUTME: BudgetInput is the request record consumed by the combination engine

package models

import (
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

// BudgetInput describes a monthly budget and the usage it has to cover.
// Allocation percentages are applied independently and are not required
// to sum to 100 by the engine.
type BudgetInput struct {
	MonthlyBudget        float64 `json:"monthly_budget" validate:"gte=0"`                 // local currency
	APIAllocationPct     float64 `json:"api_allocation_pct" validate:"gte=0,lte=100"`     // avatar + voice share
	HostingAllocationPct float64 `json:"hosting_allocation_pct" validate:"gte=0,lte=100"` // hosting share
	Users                int     `json:"users" validate:"gte=0"`
	ConcurrentSessions   int     `json:"concurrent_sessions" validate:"gte=0"`
	MinutesPerMonth      int     `json:"minutes_per_month" validate:"gte=0"`
	UseVoiceAgent        bool    `json:"use_voice_agent"`
}

// APIBudget returns the local currency allocated to avatar and voice costs
func (b BudgetInput) APIBudget() float64 {
	return b.MonthlyBudget * b.APIAllocationPct / 100
}

// HostingBudget returns the local currency allocated to hosting costs
func (b BudgetInput) HostingBudget() float64 {
	return b.MonthlyBudget * b.HostingAllocationPct / 100
}

// TotalAllocationPct returns the sum of both allocation percentages
func (b BudgetInput) TotalAllocationPct() float64 {
	return b.APIAllocationPct + b.HostingAllocationPct
}

// DefaultBudgetInput mirrors the defaults offered by the input form
func DefaultBudgetInput() BudgetInput {
	return BudgetInput{
		MonthlyBudget:        100000,
		APIAllocationPct:     60,
		HostingAllocationPct: 40,
		Users:                50,
		ConcurrentSessions:   10,
		MinutesPerMonth:      3500,
	}
}

// CombinationFilter narrows a ranked result list without reordering it
type CombinationFilter struct {
	FitsBudgetOnly bool             `json:"fits_budget_only,omitempty"`
	Provider       pricing.Provider `json:"provider,omitempty" validate:"omitempty,oneof=heygen anam tevus"`
	Limit          int              `json:"limit,omitempty" validate:"gte=0"` // 0 = no limit
}

// CombinationRequest is the body of POST /api/v1/combinations
type CombinationRequest struct {
	BudgetInput
	Filter CombinationFilter `json:"filter"`
}

// Allocation reports the sub-budgets derived from a BudgetInput
type Allocation struct {
	APIBudget     float64 `json:"api_budget"`
	HostingBudget float64 `json:"hosting_budget"`
	TotalPct      float64 `json:"total_pct"`
}

// AllocationFor computes the allocation summary of an input
func AllocationFor(input BudgetInput) Allocation {
	return Allocation{
		APIBudget:     input.APIBudget(),
		HostingBudget: input.HostingBudget(),
		TotalPct:      input.TotalAllocationPct(),
	}
}
