package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/config"
	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/integrations"
	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/interfaces"
	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/logging"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "wollen",
		Short: "Music metadata proxy over the Last.fm catalog",
		Long: `Wollen exposes a small JSON API over the Last.fm catalog.

It fills in track durations with per-track lookups and can chart a tag's
top tracks by release year.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file (json or yaml)")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newTrendsCmd(&configPath))

	return cmd
}

// app is the wired catalog pipeline shared by the subcommands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *interfaces.CatalogService
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	client, err := integrations.NewLastFMClient(integrations.LastFMConfig{
		APIKey:  cfg.LastFM.APIKey,
		BaseURL: cfg.LastFM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create last.fm client: %w", err)
	}

	enricher := integrations.NewEnricher(cfg.Enrichment.HeadLimit, logger)
	trends := integrations.NewTrendAggregator(client, integrations.TrendAggregatorConfig{
		BatchSize:  cfg.Trends.BatchSize,
		BatchDelay: cfg.Trends.BatchDelay,
		Logger:     logger,
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: interfaces.NewCatalogService(client, enricher, trends, logger),
	}, nil
}
