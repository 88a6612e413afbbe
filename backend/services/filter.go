// ABOUTME: Filtering of ranked combination lists
// ABOUTME: Narrows results by budget fit, provider, and count, and assembles API responses

package services

import (
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
)

// FilterCombinations returns the combinations matching the filter in their original order
func FilterCombinations(combos []models.Combination, filter models.CombinationFilter) []models.Combination {
	out := make([]models.Combination, 0, len(combos))
	for _, c := range combos {
		if filter.FitsBudgetOnly && !c.FitsBudget {
			continue
		}
		if filter.Provider != "" && c.AvatarPlan.Provider != filter.Provider {
			continue
		}
		out = append(out, c)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

// RankCombinations runs the calculator for a request and applies its filter.
// Evaluated counts the combinations before filtering.
func RankCombinations(calc *CombinationCalculator, req models.CombinationRequest, at time.Time) models.CombinationsResponse {
	ranked := calc.Calculate(req.BudgetInput)
	filtered := FilterCombinations(ranked, req.Filter)

	return models.CombinationsResponse{
		Allocation:   models.AllocationFor(req.BudgetInput),
		Count:        len(filtered),
		Evaluated:    len(ranked),
		Combinations: filtered,
		Metadata: models.Metadata{
			Timestamp: at,
		},
	}
}
