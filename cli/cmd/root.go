// ABOUTME: Root command for avatar-budget CLI
// ABOUTME: Handles global flags and selects the API or in-process backend

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/avatar-budget-analyzer/backend/pricing"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
)

var (
	apiURL      string
	jsonOutput  bool
	localMode   bool
	catalogFile string
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "avatar-budget",
	Short: "CLI for Avatar Budget Analyzer",
	Long: `avatar-budget is a command-line interface for the Avatar Budget Analyzer.

It ranks avatar plan, voice agent, and hosting combinations against a monthly
budget, either through the backend API or in-process with --local.

Environment Variables:
  AVATAR_BUDGET_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AVATAR_BUDGET_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Calculate in-process instead of calling the backend")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "Pricing catalog YAML for --local (default: embedded)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("AVATAR_BUDGET_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newBackend returns the in-process backend for --local, otherwise the API client
func newBackend() (client.Backend, error) {
	if !localMode {
		return client.New(GetAPIURL()), nil
	}
	if catalogFile == "" {
		return client.NewLocal(nil), nil
	}
	catalog, err := pricing.LoadFile(catalogFile)
	if err != nil {
		return nil, err
	}
	return client.NewLocal(catalog), nil
}

// backendLabel describes where results come from
func backendLabel() string {
	if localMode {
		if catalogFile != "" {
			return "local (" + catalogFile + ")"
		}
		return "local (embedded catalog)"
	}
	return GetAPIURL()
}
