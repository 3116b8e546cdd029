package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/analysis"
	"github.com/jonathan/board-panel/internal/config"
	"github.com/jonathan/board-panel/internal/db"
	"github.com/jonathan/board-panel/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveAPIKey     string
	serveDBURL      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for submitting startup profiles and polling analysis results.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8002)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL URL for archiving results (overrides DATABASE_URL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(serveConfigPath, servePort, serveAPIKey, serveDBURL)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := advisory.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create advisory client: %w", err)
	}
	defer client.Close()

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	} else {
		log.Printf("no database configured; results are kept in memory only")
	}

	pacer := analysis.NewPacer(cfg.TokensPerMinute, cfg.TokensPerCall, cfg.SafetyMargin)
	orchestrator := analysis.NewOrchestrator(client, pacer, cfg.MaxRetryAttempts, database)

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		Orchestrator: orchestrator,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// resolveConfig layers the optional config file, CLI flags, environment
// variables, and defaults into a validated configuration. Flags win over the
// file; the environment fills remaining gaps.
func resolveConfig(path string, port int, apiKey, dbURL string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if port != 0 {
		cfg.Port = port
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
