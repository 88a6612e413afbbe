// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers, and mounts them on a mux

package handlers

import (
	"net/http"

	"github.com/markalston/avatar-budget-analyzer/backend/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Pricing
		{Method: http.MethodGet, Path: "/api/v1/catalog", Handler: h.GetCatalog},
		{Method: http.MethodGet, Path: "/api/v1/voice/preview", Handler: h.PreviewVoiceCosts},

		// Budget analysis
		{Method: http.MethodPost, Path: "/api/v1/combinations", Handler: h.CalculateCombinations},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// Mux registers every route wrapped in the given middleware, plus an
// OPTIONS catch-all so CORS preflight requests reach the middleware.
func (h *Handler) Mux(mws ...middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, mws...))
	}
	mux.HandleFunc("OPTIONS /api/v1/", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, mws...))
	return mux
}
