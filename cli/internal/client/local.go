// ABOUTME: In-process backend that prices combinations without the HTTP API
// ABOUTME: Applies the same validation and filtering as the server

package client

import (
	"context"
	"strconv"
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
)

// Local answers Backend calls from a catalog loaded into the CLI process
type Local struct {
	calc *services.CombinationCalculator
	now  func() time.Time
}

// NewLocal creates a local backend. A nil catalog selects the embedded one.
func NewLocal(catalog *pricing.Catalog) *Local {
	return &Local{
		calc: services.NewCombinationCalculator(catalog),
		now:  time.Now,
	}
}

// Catalog returns the local catalog
func (l *Local) Catalog(ctx context.Context) (*models.CatalogResponse, error) {
	resp := models.NewCatalogResponse(l.calc.Catalog())
	return &resp, nil
}

// Combinations validates the request and ranks combinations in-process
func (l *Local) Combinations(ctx context.Context, req models.CombinationRequest) (*models.CombinationsResponse, error) {
	if err := services.ValidateCombinationRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := services.RankCombinations(l.calc, req, l.now())
	return &resp, nil
}

// VoicePreview quotes every voice agent for the given minutes
func (l *Local) VoicePreview(ctx context.Context, minutes int) (*models.VoicePreviewResponse, error) {
	if _, err := services.ParseMinutes(strconv.Itoa(minutes)); err != nil {
		return nil, err
	}
	return &models.VoicePreviewResponse{
		Minutes: minutes,
		Quotes:  services.PreviewVoiceCosts(l.calc.Catalog(), minutes),
	}, nil
}
