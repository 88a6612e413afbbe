// ABOUTME: HTTP handlers for avatar budget analyzer API endpoints
// ABOUTME: Holds shared dependencies and JSON request/response helpers

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/avatar-budget-analyzer/backend/cache"
	"github.com/markalston/avatar-budget-analyzer/backend/config"
	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

const (
	// CatalogSourceEmbedded is reported when the compiled-in catalog is used
	CatalogSourceEmbedded = "embedded"
	// CatalogSourceCustom is reported for a catalog built in-process
	CatalogSourceCustom = "custom"
)

type Handler struct {
	cfg           *config.Config
	cache         *cache.Cache[models.CombinationsResponse]
	calc          *services.CombinationCalculator
	catalogSource string
	inflight      singleflight.Group
	now           func() time.Time
}

// NewHandler wires handlers to their dependencies. cfg, cache, and catalog
// may each be nil: no config means defaults, no cache disables result
// caching, and no catalog selects the embedded one.
func NewHandler(cfg *config.Config, c *cache.Cache[models.CombinationsResponse], catalog *pricing.Catalog) *Handler {
	source := CatalogSourceEmbedded
	switch {
	case catalog == nil:
		catalog = pricing.Default()
	case cfg != nil && cfg.PricingCatalogPath != "":
		source = cfg.PricingCatalogPath
	default:
		source = CatalogSourceCustom
	}

	return &Handler{
		cfg:           cfg,
		cache:         c,
		calc:          services.NewCombinationCalculator(catalog),
		catalogSource: source,
		now:           time.Now,
	}
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes v before sending the status, so an encoding failure
// becomes a 500 instead of an empty 200.
func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
		buf.Reset()
		code = http.StatusInternalServerError
		// ErrorResponse holds only strings and an int, so this cannot fail
		_ = json.NewEncoder(&buf).Encode(models.ErrorResponse{
			Error: "Internal server error",
			Code:  code,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeServiceError maps service errors to HTTP status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		h.writeErrorDetails(w, "Invalid input", err.Error(), http.StatusBadRequest)
		return
	}
	slog.Error("Request failed", "error", err)
	h.writeError(w, "Internal server error", http.StatusInternalServerError)
}
