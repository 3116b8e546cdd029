package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/analysis"
	"github.com/jonathan/board-panel/internal/observability"
	"github.com/jonathan/board-panel/internal/types"
)

var (
	analyzeProfilePath string
	analyzeConfigPath  string
	analyzeAPIKey      string
	analyzeVerbose     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one advisory analysis from the command line",
	Long:  `Run the full five-seat advisory panel over a startup profile JSON file and print the suggestions, without starting the HTTP server.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProfilePath, "profile", "", "Path to startup profile JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the profile summary and formatted results")
	_ = analyzeCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(analyzeConfigPath, 0, analyzeAPIKey, "")
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	profile, err := loadProfile(analyzeProfilePath)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if analyzeVerbose {
		printer.PrintStartupProfile(profile)
	}

	client, err := advisory.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create advisory client: %w", err)
	}
	defer client.Close()

	pacer := analysis.NewPacer(cfg.TokensPerMinute, cfg.TokensPerCall, cfg.SafetyMargin)
	orchestrator := analysis.NewOrchestrator(client, pacer, cfg.MaxRetryAttempts, nil)

	results, err := orchestrator.Analyze(ctx, profile)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose {
		printer.PrintAnalysisResults(results)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// loadProfile reads and validates a startup profile from a JSON file.
func loadProfile(path string) (*types.StartupProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var profile types.StartupProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid startup profile: %w", err)
	}

	return &profile, nil
}
