// Command payanalysis analyses how Civil Service People Survey engagement
// and pay-theme scores relate to median pay for the SEO/HEO grade band,
// cross-sectionally, over time (nominal and real terms) and as a two-way
// fixed-effects panel.
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
	"cspspay/internal/ons"
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
	logger.InfoContext(ctx, "starting pay analysis")

	surveyPath, err := files.LocateWorkbook(cfg.Sources.SurveyDirs, cfg.Sources.SurveyFileName)
	if err != nil {
		logger.ErrorContext(ctx, "survey workbook not found", "error", err)
		os.Exit(1)
	}
	payPath, err := files.LocateWorkbook(cfg.Sources.PayDirs, cfg.Sources.PayFileName)
	if err != nil {
		logger.ErrorContext(ctx, "pay workbook not found", "error", err)
		os.Exit(1)
	}

	survey, err := ingest.ParseSurveyWorkbook(surveyPath, cfg.Sources.SurveySheet, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read survey workbook", "error", err)
		os.Exit(1)
	}
	pay, err := ingest.ParsePayWorkbook(payPath, cfg.Sources.PaySheet, config.PayNASentinels, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read pay workbook", "error", err)
		os.Exit(1)
	}

	// Real-terms figures need the CPI series; its unavailability is terminal.
	cpi, err := ons.NewClient(cfg.Sources.ONSBaseURL, logger).
		MonthlySeries(ctx, cfg.Sources.CPISeriesID, cfg.Sources.CPIDatasetID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch CPI series", "error", err)
		os.Exit(1)
	}

	dir := cfg.Output.PlotDir
	if *plotDir != "" {
		dir = *plotDir
	}
	if *noPlots {
		dir = ""
	}

	runner := analysis.NewPay(analysis.DefaultPayConfig(cfg.Sources.CPIMonth, dir), report.NewSink(os.Stdout), logger)
	if err := runner.Run(ctx, survey, pay, cpi); err != nil {
		logger.ErrorContext(ctx, "pay analysis failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "pay analysis complete")
}
