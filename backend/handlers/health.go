// ABOUTME: HTTP handlers for health and catalog endpoints
// ABOUTME: Provides API status and the pricing catalog in use

package handlers

import (
	"net/http"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
)

// Health returns API status, catalog sizes, and cached result count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	catalog := h.calc.Catalog()

	resp := models.HealthResponse{
		Status:         "ok",
		CatalogSource:  h.catalogSource,
		AvatarPlans:    len(catalog.AvatarPlans()),
		VoiceAgents:    len(catalog.VoiceAgents()),
		HostingOptions: len(catalog.HostingOptions()),
	}
	if h.cache != nil {
		resp.CachedResults = h.cache.Len()
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetCatalog returns every plan, voice agent, and hosting option with currency constants.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.NewCatalogResponse(h.calc.Catalog()))
}
