// ABOUTME: Tests for the Avatar Budget Analyzer API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
)

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*Local)(nil)
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{
			Status:        "ok",
			CatalogSource: "embedded",
			AvatarPlans:   12,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.AvatarPlans != 12 {
		t.Errorf("expected 12 plans, got %d", resp.AvatarPlans)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8080/")
	if c.BaseURL() != "http://localhost:8080" {
		t.Errorf("expected trailing slash trimmed, got %s", c.BaseURL())
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot connect to backend") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())
	if err == nil || err.Error() != "backend returned status 500" {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil || err.Error() != "request canceled" {
		t.Errorf("expected canceled error, got %v", err)
	}
}

func TestCombinations_SendsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/combinations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type")
		}

		var req models.CombinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.MonthlyBudget != 100000 || req.Filter.Limit != 5 {
			t.Errorf("unexpected request body %+v", req)
		}

		json.NewEncoder(w).Encode(models.CombinationsResponse{
			Count:        1,
			Evaluated:    16,
			Combinations: []models.Combination{{ID: "heygen-essential-inbuilt-railway", TotalCost: 75517}},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Combinations(context.Background(), models.CombinationRequest{
		BudgetInput: models.DefaultBudgetInput(),
		Filter:      models.CombinationFilter{Limit: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 1 || resp.Combinations[0].TotalCost != 75517 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestCombinations_ErrorDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error:   "Invalid input",
			Details: "allocation percentages must sum to 100, got 90.00",
			Code:    http.StatusBadRequest,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Combinations(context.Background(), models.CombinationRequest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	want := "backend error: Invalid input: allocation percentages must sum to 100, got 90.00"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestVoicePreview_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("minutes") != "3500" {
			t.Errorf("expected minutes=3500, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.VoicePreviewResponse{Minutes: 3500})
	}))
	defer server.Close()

	resp, err := New(server.URL).VoicePreview(context.Background(), 3500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Minutes != 3500 {
		t.Errorf("expected 3500 minutes, got %d", resp.Minutes)
	}
}

func TestCatalog_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{"))
	}))
	defer server.Close()

	_, err := New(server.URL).Catalog(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid response from backend") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestLocal_Combinations(t *testing.T) {
	l := NewLocal(nil)

	resp, err := l.Combinations(context.Background(), models.CombinationRequest{
		BudgetInput: models.DefaultBudgetInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 16 || resp.Evaluated != 16 {
		t.Errorf("expected 16 combinations, got %d/%d", resp.Count, resp.Evaluated)
	}
}

func TestLocal_Combinations_InvalidInput(t *testing.T) {
	l := NewLocal(nil)

	input := models.DefaultBudgetInput()
	input.HostingAllocationPct = 30

	_, err := l.Combinations(context.Background(), models.CombinationRequest{BudgetInput: input})
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLocal_CatalogAndPreview(t *testing.T) {
	l := NewLocal(nil)

	catalog, err := l.Catalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.AvatarPlans) != 12 {
		t.Errorf("expected 12 plans, got %d", len(catalog.AvatarPlans))
	}

	preview, err := l.VoicePreview(context.Background(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preview.Quotes) != len(catalog.VoiceAgents) {
		t.Errorf("expected one quote per agent, got %d", len(preview.Quotes))
	}

	if _, err := l.VoicePreview(context.Background(), -1); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative minutes, got %v", err)
	}
}
