// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full server from environment config the same way main.go does

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/avatar-budget-analyzer/backend/cache"
	"github.com/markalston/avatar-budget-analyzer/backend/config"
	"github.com/markalston/avatar-budget-analyzer/backend/handlers"
	"github.com/markalston/avatar-budget-analyzer/backend/middleware"
	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
)

const defaultBudgetBody = `{
	"monthly_budget": 100000,
	"api_allocation_pct": 60,
	"hosting_allocation_pct": 40,
	"users": 50,
	"concurrent_sessions": 10,
	"minutes_per_month": 3500,
	"use_voice_agent": false
}`

// withTestEnv sets env vars for a test, keeps any .env file out of the way,
// and returns a cleanup function that restores the original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	vars := map[string]string{
		"ENV_FILE": filepath.Join(t.TempDir(), "missing.env"),
	}
	for key, value := range extra {
		vars[key] = value
	}

	type saved struct {
		value string
		ok    bool
	}
	originals := make(map[string]saved, len(vars))
	for key, value := range vars {
		v, ok := os.LookupEnv(key)
		originals[key] = saved{v, ok}
		os.Setenv(key, value)
	}

	return func() {
		for key, orig := range originals {
			if orig.ok {
				os.Setenv(key, orig.value)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}

// newTestServer loads config from env and serves the full middleware chain
func newTestServer(t *testing.T, env map[string]string) *httptest.Server {
	t.Helper()
	t.Cleanup(withTestEnv(t, env))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	var catalog *pricing.Catalog
	if cfg.PricingCatalogPath != "" {
		catalog, err = pricing.LoadFile(cfg.PricingCatalogPath)
		if err != nil {
			t.Fatalf("Failed to load catalog: %v", err)
		}
	}

	c := cache.New[models.CombinationsResponse](cfg.CacheDuration())
	t.Cleanup(c.Close)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	mux := handlers.NewHandler(cfg, c, catalog).Mux(
		middleware.LogRequest,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiter, middleware.ClientIP),
	)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// postJSON sends body to path with optional extra headers
func postJSON(t *testing.T, server *httptest.Server, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// budgetBody renders a combination request with overrides applied to the default input
func budgetBody(t *testing.T, mutate func(*models.CombinationRequest)) string {
	t.Helper()
	req := models.CombinationRequest{BudgetInput: models.DefaultBudgetInput()}
	if mutate != nil {
		mutate(&req)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}
	return buf.String()
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}
