package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"cspspay/internal/cleaning"
	"cspspay/internal/config"
	"cspspay/internal/dataset"
	"cspspay/internal/pivot"
	"cspspay/internal/plot"
	"cspspay/internal/regression"
	"cspspay/internal/report"
	"cspspay/internal/validation"
)

// ThemeScoreConfig configures the theme-score analysis: organisation-level
// EEI and theme scores for the cross-section year, plus civil-service mean
// and median series over time.
type ThemeScoreConfig struct {
	EEILabel    string
	ThemeLabels []string

	MedianOrganisation string
	MeanOrganisation   string

	MinYear          int
	MaxYear          int
	MeanMinYear      int
	CrossSectionYear int

	DeptGroupsToDrop []string
	OrgsToDrop       []string
	DeptOnly         config.Conditions

	// PlotDir receives pairwise scatter plots; empty disables plotting.
	PlotDir string
}

// DefaultThemeScoreConfig returns the standard theme-score analysis
// configuration.
func DefaultThemeScoreConfig(plotDir string) ThemeScoreConfig {
	return ThemeScoreConfig{
		EEILabel:           config.EEILabel,
		ThemeLabels:        config.ThemeScoreLabels,
		MedianOrganisation: config.MedianBenchmarkOrganisation,
		MeanOrganisation:   config.MeanBenchmarkOrganisation,
		MinYear:            config.SurveyMinYear,
		MaxYear:            config.SurveyMaxYear,
		MeanMinYear:        config.SurveyMeanMinYear,
		CrossSectionYear:   config.CrossSectionYear,
		DeptGroupsToDrop:   config.DeptGroupsToDrop,
		OrgsToDrop:         config.ThemeScoreOrgsToDrop,
		DeptOnly:           config.SurveyDeptOnly,
		PlotDir:            plotDir,
	}
}

// ThemeScores runs the theme-score analysis end to end, writing results to
// the sink and plots under the configured directory.
type ThemeScores struct {
	cfg    ThemeScoreConfig
	sink   *report.Sink
	logger *slog.Logger
}

// NewThemeScores creates a theme-score analysis runner.
func NewThemeScores(cfg ThemeScoreConfig, sink *report.Sink, logger *slog.Logger) *ThemeScores {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThemeScores{cfg: cfg, sink: sink, logger: logger}
}

// Run validates, cleans, pivots and analyses the survey records.
func (a *ThemeScores) Run(ctx context.Context, records []dataset.SurveyRecord) error {
	if err := validation.CheckSurvey(records, validation.SurveyExpectations{
		MinYear:            a.cfg.MinYear,
		MaxYear:            a.cfg.MaxYear,
		MeanMinYear:        a.cfg.MeanMinYear,
		DeptGroupsToDrop:   a.cfg.DeptGroupsToDrop,
		OrgsToDrop:         a.cfg.OrgsToDrop,
		DeptOnly:           a.cfg.DeptOnly,
		MedianOrganisation: a.cfg.MedianOrganisation,
		MeanOrganisation:   a.cfg.MeanOrganisation,
		EEILabel:           a.cfg.EEILabel,
		ThemeLabels:        a.cfg.ThemeLabels,
		Renames:            config.SurveyRenames,
	}); err != nil {
		return fmt.Errorf("survey data validation: %w", err)
	}

	cleaned := cleaning.EditSurvey(records, cleaning.SurveyFilter{
		DeptGroupsToDrop: a.cfg.DeptGroupsToDrop,
		OrgsToDrop:       a.cfg.OrgsToDrop,
	})
	a.logger.InfoContext(ctx, "cleaned survey data",
		"raw_records", len(records),
		"cleaned_records", len(cleaned),
	)
	rows := pivot.FromSurvey(cleaned)

	// Organisation-level cross-section for the latest survey year.
	crossSection, err := pivot.Pivot(rows,
		pivot.ByYear(a.cfg.CrossSectionYear),
		pivot.Options{ExcludeOrgs: []string{a.cfg.MedianOrganisation, a.cfg.MeanOrganisation}},
	)
	if err != nil {
		return fmt.Errorf("organisation cross-section pivot: %w", err)
	}
	desc := fmt.Sprintf("%d organisation-level data", a.cfg.CrossSectionYear)
	if err := a.analyseCut(ctx, crossSection, desc, "organisation", 0); err != nil {
		return err
	}

	// Civil-service mean and median series over time; regressions are
	// restricted to the cross-section year.
	for _, cut := range []struct {
		organisation string
		desc         string
		prefix       string
	}{
		{a.cfg.MeanOrganisation, fmt.Sprintf("%d mean data", a.cfg.CrossSectionYear), "mean"},
		{a.cfg.MedianOrganisation, fmt.Sprintf("%d median data", a.cfg.CrossSectionYear), "median"},
	} {
		table, err := pivot.Pivot(rows, pivot.ByOrganisation(cut.organisation), pivot.Options{})
		if err != nil {
			return fmt.Errorf("%s series pivot: %w", cut.prefix, err)
		}
		if err := a.analyseCut(ctx, table, cut.desc, cut.prefix, a.cfg.CrossSectionYear); err != nil {
			return err
		}
	}

	return nil
}

// analyseCut draws the pairwise plots, prints correlations and fits the
// per-theme regressions for one data cut. A non-zero yearFilter restricts
// the regressions (not the plots) to that year.
func (a *ThemeScores) analyseCut(ctx context.Context, table *pivot.WideTable, desc, prefix string, yearFilter int) error {
	if a.cfg.PlotDir != "" {
		err := plot.PairPlot(table, a.cfg.EEILabel, a.cfg.ThemeLabels, a.cfg.PlotDir, prefix, plot.ScatterOptions{})
		if err != nil {
			return fmt.Errorf("pair plot for %s: %w", desc, err)
		}
	}

	a.sink.Correlations(a.cfg.EEILabel, desc, a.cfg.ThemeLabels,
		Correlations(table, a.cfg.EEILabel, a.cfg.ThemeLabels))

	regressionTable := table
	if yearFilter != 0 {
		regressionTable = FilterYear(table, yearFilter)
	}

	// Theme order is part of the reporting contract.
	for _, theme := range a.cfg.ThemeLabels {
		res := regression.SimpleOLS(regressionTable.Column(theme), regressionTable.Column(a.cfg.EEILabel))
		a.sink.SimpleOLS(a.cfg.EEILabel, theme, desc, res)
	}

	a.logger.InfoContext(ctx, "analysed theme-score cut",
		"description", desc,
		"table", describeRows(table),
	)
	return nil
}
