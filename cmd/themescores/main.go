// Command themescores analyses how the Civil Service People Survey theme
// scores relate to the Employee Engagement Index, across organisations in
// the latest survey year and over time for the service-wide benchmarks.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"cspspay/internal/analysis"
	"cspspay/internal/config"
	"cspspay/internal/files"
	"cspspay/internal/infrastructure"
	"cspspay/internal/ingest"
	"cspspay/internal/report"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to optional YAML config file")
	plotDir := flag.String("plots", "", "directory for scatter plots (overrides config; empty uses config)")
	noPlots := flag.Bool("no-plots", false, "skip plot generation")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "starting theme-score analysis")

	path, err := files.LocateWorkbook(cfg.Sources.SurveyDirs, cfg.Sources.SurveyFileName)
	if err != nil {
		logger.ErrorContext(ctx, "survey workbook not found", "error", err)
		os.Exit(1)
	}

	records, err := ingest.ParseSurveyWorkbook(path, cfg.Sources.SurveySheet, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read survey workbook", "error", err)
		os.Exit(1)
	}

	dir := cfg.Output.PlotDir
	if *plotDir != "" {
		dir = *plotDir
	}
	if *noPlots {
		dir = ""
	}

	runner := analysis.NewThemeScores(analysis.DefaultThemeScoreConfig(dir), report.NewSink(os.Stdout), logger)
	if err := runner.Run(ctx, records); err != nil {
		logger.ErrorContext(ctx, "theme-score analysis failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "theme-score analysis complete")
}
