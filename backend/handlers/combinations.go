// ABOUTME: HTTP handlers for combination ranking and voice cost preview
// ABOUTME: Validates input, runs the calculator, and caches results per request

package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
)

// CalculateCombinations ranks every valid combination for a budget.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) CalculateCombinations(w http.ResponseWriter, r *http.Request) {
	var req models.CombinationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := services.ValidateCombinationRequest(req); err != nil {
		h.writeServiceError(w, err)
		return
	}

	key := combinationsCacheKey(req)
	if h.cache != nil {
		if cached, found := h.cache.Get(key); found {
			cached.Metadata.Cached = true
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	// Identical concurrent requests share one calculation
	v, _, shared := h.inflight.Do(key, func() (any, error) {
		resp := h.buildCombinations(req)
		if h.cache != nil {
			h.cache.Set(key, resp)
		}
		return resp, nil
	})
	if shared {
		slog.Debug("Combination calculation shared", "key", key)
	}

	h.writeJSON(w, http.StatusOK, v.(models.CombinationsResponse))
}

func (h *Handler) buildCombinations(req models.CombinationRequest) models.CombinationsResponse {
	resp := services.RankCombinations(h.calc, req, h.now())

	slog.Info("Combinations calculated",
		"evaluated", resp.Evaluated,
		"returned", resp.Count,
		"use_voice_agent", req.UseVoiceAgent,
	)
	return resp
}

// combinationsCacheKey hashes the request's canonical JSON form
func combinationsCacheKey(req models.CombinationRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "combinations:" + hex.EncodeToString(sum[:])
}

// PreviewVoiceCosts quotes every voice agent for ?minutes=N.
func (h *Handler) PreviewVoiceCosts(w http.ResponseWriter, r *http.Request) {
	minutes, err := services.ParseMinutes(r.URL.Query().Get("minutes"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, models.VoicePreviewResponse{
		Minutes: minutes,
		Quotes:  services.PreviewVoiceCosts(h.calc.Catalog(), minutes),
	})
}
