// ABOUTME: Tests for the check command
// ABOUTME: Verifies budget gate results, output formatting, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
)

func TestSummarizeCheck(t *testing.T) {
	combos := []models.Combination{
		{ID: "a", FitsBudget: false},
		{ID: "b", FitsBudget: true},
		{ID: "c", FitsBudget: true},
	}

	r := summarizeCheck(models.DefaultBudgetInput(), combos)
	if r.evaluated != 3 || r.fitting != 2 {
		t.Errorf("expected 2 of 3 fitting, got %d of %d", r.fitting, r.evaluated)
	}
	if r.best == nil || r.best.ID != "b" {
		t.Errorf("expected best fitting b, got %+v", r.best)
	}
}

func TestSummarizeCheck_NoneFit(t *testing.T) {
	combos := []models.Combination{{ID: "a"}, {ID: "b"}}

	r := summarizeCheck(models.DefaultBudgetInput(), combos)
	if r.fitting != 0 {
		t.Errorf("expected none fitting, got %d", r.fitting)
	}
	if r.best == nil || r.best.ID != "a" {
		t.Errorf("expected closest to be top ranked, got %+v", r.best)
	}
}

func TestSummarizeCheck_Empty(t *testing.T) {
	r := summarizeCheck(models.DefaultBudgetInput(), nil)
	if r.best != nil || r.evaluated != 0 {
		t.Errorf("expected empty result, got %+v", r)
	}
	if !strings.Contains(formatCheckHuman(r), "No valid combinations") {
		t.Error("expected no-combination message")
	}
}

func TestRunCheck_Passes(t *testing.T) {
	input := models.DefaultBudgetInput()
	input.MonthlyBudget = 200000

	var buf bytes.Buffer
	exitCode := runCheckWith(context.Background(), client.NewLocal(nil), &buf, input)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "PASSED") {
		t.Errorf("expected PASSED in output, got %q", buf.String())
	}
}

func TestRunCheck_Fails(t *testing.T) {
	// No hosting option fits in 40% of 100,000 for 50 users
	var buf bytes.Buffer
	exitCode := runCheckWith(context.Background(), client.NewLocal(nil), &buf, models.DefaultBudgetInput())

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "FAILED") || !strings.Contains(buf.String(), "Closest:") {
		t.Errorf("expected failure with closest match, got %q", buf.String())
	}
}

func TestRunCheck_InvalidInput(t *testing.T) {
	input := models.DefaultBudgetInput()
	input.Users = -1

	var buf bytes.Buffer
	exitCode := runCheckWith(context.Background(), client.NewLocal(nil), &buf, input)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestRunCheck_JSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	runCheckWith(context.Background(), client.NewLocal(nil), &buf, models.DefaultBudgetInput())

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["status"] != "failed" {
		t.Errorf("expected failed status, got %v", parsed["status"])
	}
	if parsed["evaluated"] != float64(16) {
		t.Errorf("expected 16 evaluated, got %v", parsed["evaluated"])
	}
}

func TestRunCheck_API(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.CombinationsResponse{
			Combinations: []models.Combination{{ID: "a", FitsBudget: true, TotalCost: 1000}},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runCheck(context.Background(), &buf); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
}

func TestRunCheck_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:99999"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runCheck(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Error("expected error message in output")
	}
}
