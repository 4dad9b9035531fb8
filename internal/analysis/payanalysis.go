package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"cspspay/internal/cleaning"
	"cspspay/internal/config"
	"cspspay/internal/dataset"
	"cspspay/internal/deflate"
	"cspspay/internal/ons"
	"cspspay/internal/pivot"
	"cspspay/internal/plot"
	"cspspay/internal/reconcile"
	"cspspay/internal/regression"
	"cspspay/internal/report"
	"cspspay/internal/validation"
)

// PayConfig configures the pay analysis: engagement and "Pay and benefits"
// scores against median pay for the target grade, as cross-sections, time
// series (nominal and real terms) and two-way fixed-effects panels.
type PayConfig struct {
	EEILabel      string
	ThemeLabels   []string
	PayThemeLabel string

	MedianOrganisation  string
	MeanOrganisation    string
	SummaryOrganisation string
	TargetGrade         string

	SurveyMinYear     int
	SurveyMaxYear     int
	SurveyMeanMinYear int
	PayMinYear        int
	PayMaxYear        int
	CrossSectionYear  int

	DeptGroupsToDrop []string
	SurveyOrgsToDrop []string

	SurveyOrganisationOnly config.Conditions
	PayOrganisationOnly    config.Conditions
	SurveyDeptOnly         config.Conditions
	PayDeptOnly            config.Conditions

	SurveyRenames map[string]string
	PayRenames    map[string]string

	CPIMonth    string
	CPIBaseYear int

	// PlotDir receives the scatter plots; empty disables plotting.
	PlotDir string
}

// DefaultPayConfig returns the standard pay analysis configuration.
func DefaultPayConfig(cpiMonth, plotDir string) PayConfig {
	return PayConfig{
		EEILabel:               config.EEILabel,
		ThemeLabels:            config.ThemeScoreLabels,
		PayThemeLabel:          "Pay and benefits",
		MedianOrganisation:     config.MedianBenchmarkOrganisation,
		MeanOrganisation:       config.MeanBenchmarkOrganisation,
		SummaryOrganisation:    config.PaySummaryOrganisation,
		TargetGrade:            config.PayTargetGrade,
		SurveyMinYear:          config.SurveyMinYear,
		SurveyMaxYear:          config.SurveyMaxYear,
		SurveyMeanMinYear:      config.SurveyMeanMinYear,
		PayMinYear:             config.PayMinYear,
		PayMaxYear:             config.PayMaxYear,
		CrossSectionYear:       config.CrossSectionYear,
		DeptGroupsToDrop:       config.DeptGroupsToDrop,
		SurveyOrgsToDrop:       config.PayAnalysisSurveyOrgsToDrop,
		SurveyOrganisationOnly: config.SurveyOrganisationOnly,
		PayOrganisationOnly:    config.PayOrganisationOnly,
		SurveyDeptOnly:         config.SurveyDeptOnly,
		PayDeptOnly:            config.PayDeptOnly,
		SurveyRenames:          config.SurveyRenames,
		PayRenames:             config.PayRenames,
		CPIMonth:               cpiMonth,
		CPIBaseYear:            config.CPIBaseYear,
		PlotDir:                plotDir,
	}
}

// Pay runs the pay analysis end to end.
type Pay struct {
	cfg    PayConfig
	sink   *report.Sink
	logger *slog.Logger
}

// NewPay creates a pay analysis runner.
func NewPay(cfg PayConfig, sink *report.Sink, logger *slog.Logger) *Pay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pay{cfg: cfg, sink: sink, logger: logger}
}

// Run validates, cleans, reconciles, pivots, deflates and analyses the
// survey and pay datasets together with the CPI observations.
func (a *Pay) Run(ctx context.Context, survey []dataset.SurveyRecord, pay []dataset.PayRecord, cpi []dataset.CPIObservation) error {
	if err := a.validate(survey, pay); err != nil {
		return err
	}

	minYear := min(a.cfg.SurveyMinYear, a.cfg.PayMinYear)
	maxYear := max(a.cfg.SurveyMaxYear, a.cfg.PayMaxYear)

	cleanedSurvey := cleaning.EditSurvey(survey, cleaning.SurveyFilter{
		DeptGroupsToDrop: a.cfg.DeptGroupsToDrop,
		OrgsToDrop:       a.cfg.SurveyOrgsToDrop,
		MinYear:          minYear,
		MaxYear:          maxYear,
	})
	cleanedPay := cleaning.EditPay(pay, cleaning.PayFilter{
		TargetGrade:      a.cfg.TargetGrade,
		DeptGroupsToDrop: a.cfg.DeptGroupsToDrop,
		MinYear:          minYear,
		MaxYear:          maxYear,
	})

	// Reconciliation step one: collapse synonyms before any rule matching.
	cleanedSurvey = reconcile.RenameSurvey(cleanedSurvey, a.cfg.SurveyRenames)
	cleanedPay = reconcile.RenamePay(cleanedPay, a.cfg.PayRenames)

	a.logger.InfoContext(ctx, "cleaned and renamed datasets",
		"survey_records", len(cleanedSurvey),
		"pay_records", len(cleanedPay),
	)

	cuts, err := a.buildCuts(cleanedSurvey, cleanedPay)
	if err != nil {
		return err
	}

	// Prove the taxonomies align before any organisation join.
	if err := reconcile.VerifyMatched(
		cuts.surveyOrgYear.Organisations(), cuts.payOrgYear.Organisations(),
		"survey", "pay"); err != nil {
		return fmt.Errorf("organisation-level reconciliation: %w", err)
	}
	if err := reconcile.VerifyMatched(
		cuts.surveyDeptYear.Organisations(), cuts.payDeptYear.Organisations(),
		"survey", "pay"); err != nil {
		return fmt.Errorf("department-level reconciliation: %w", err)
	}

	series, err := a.deflatorSeries(cpi)
	if err != nil {
		return err
	}

	if err := a.analyseMedianSeries(ctx, cuts, cleanedPay, series); err != nil {
		return err
	}
	if err := a.analyseCrossSection(ctx, cuts.surveyOrgYear, cuts.payOrgYear,
		fmt.Sprintf("%d organisation-level data", a.cfg.CrossSectionYear), "organisation"); err != nil {
		return err
	}
	if err := a.analysePanel(ctx, cuts.surveyOrgPanel, cuts.payOrgPanel,
		"Organisation-level panel data"); err != nil {
		return err
	}
	if err := a.analyseCrossSection(ctx, cuts.surveyDeptYear, cuts.payDeptYear,
		fmt.Sprintf("%d organisation-level data, depts only", a.cfg.CrossSectionYear), "department"); err != nil {
		return err
	}
	if err := a.analysePanel(ctx, cuts.surveyDeptPanel, cuts.payDeptPanel,
		"Organisation-level panel data, depts only"); err != nil {
		return err
	}

	a.sink.Legend()
	return nil
}

func (a *Pay) validate(survey []dataset.SurveyRecord, pay []dataset.PayRecord) error {
	if err := validation.CheckSurvey(survey, validation.SurveyExpectations{
		MinYear:            a.cfg.SurveyMinYear,
		MaxYear:            a.cfg.SurveyMaxYear,
		MeanMinYear:        a.cfg.SurveyMeanMinYear,
		DeptGroupsToDrop:   a.cfg.DeptGroupsToDrop,
		OrgsToDrop:         a.cfg.SurveyOrgsToDrop,
		DeptOnly:           a.cfg.SurveyDeptOnly,
		MedianOrganisation: a.cfg.MedianOrganisation,
		MeanOrganisation:   a.cfg.MeanOrganisation,
		EEILabel:           a.cfg.EEILabel,
		ThemeLabels:        a.cfg.ThemeLabels,
		Renames:            a.cfg.SurveyRenames,
	}); err != nil {
		return fmt.Errorf("survey data validation: %w", err)
	}
	if err := validation.CheckPay(pay, validation.PayExpectations{
		MinYear:             a.cfg.PayMinYear,
		MaxYear:             a.cfg.PayMaxYear,
		DeptGroupsToDrop:    a.cfg.DeptGroupsToDrop,
		DeptOnly:            a.cfg.PayDeptOnly,
		SummaryOrganisation: a.cfg.SummaryOrganisation,
		TargetGrade:         a.cfg.TargetGrade,
		Renames:             a.cfg.PayRenames,
	}); err != nil {
		return fmt.Errorf("pay data validation: %w", err)
	}
	return nil
}

// cuts holds the five pivoted views of each side the analysis needs.
type cuts struct {
	surveyMedian    *pivot.WideTable
	surveyOrgYear   *pivot.WideTable
	surveyDeptYear  *pivot.WideTable
	surveyOrgPanel  *pivot.WideTable
	surveyDeptPanel *pivot.WideTable

	payMedian    *pivot.WideTable
	payOrgYear   *pivot.WideTable
	payDeptYear  *pivot.WideTable
	payOrgPanel  *pivot.WideTable
	payDeptPanel *pivot.WideTable
}

func (a *Pay) buildCuts(cleanedSurvey []dataset.SurveyRecord, cleanedPay []dataset.PayRecord) (*cuts, error) {
	surveyRows := pivot.FromSurvey(cleanedSurvey)
	payRows := pivot.FromPay(cleanedPay)

	benchmarks := []string{a.cfg.MedianOrganisation, a.cfg.MeanOrganisation}

	surveyOrgOpts := pivot.Options{
		ExcludeOrgs:     append(benchmarks, a.cfg.SurveyOrganisationOnly.ExcludeOrgs...),
		PreserveOrgType: true,
	}
	surveyDeptOpts := pivot.Options{
		OrgTypeFilter:   a.cfg.SurveyDeptOnly.OrgTypeFilter,
		IncludeOrgs:     a.cfg.SurveyDeptOnly.IncludeOrgs,
		ExcludeOrgs:     append(benchmarks, a.cfg.SurveyDeptOnly.ExcludeOrgs...),
		PreserveOrgType: true,
	}
	payOrgOpts := pivot.Options{
		ExcludeOrgs: append([]string{a.cfg.SummaryOrganisation}, a.cfg.PayOrganisationOnly.ExcludeOrgs...),
	}
	payDeptOpts := pivot.Options{
		OrgTypeFilter: a.cfg.PayDeptOnly.OrgTypeFilter,
		IncludeOrgs:   a.cfg.PayDeptOnly.IncludeOrgs,
		ExcludeOrgs:   append([]string{a.cfg.SummaryOrganisation}, a.cfg.PayDeptOnly.ExcludeOrgs...),
	}

	var c cuts
	var err error
	build := func(dst **pivot.WideTable, name string, rows []pivot.LongRow, sel pivot.Selector, opts pivot.Options) {
		if err != nil {
			return
		}
		var table *pivot.WideTable
		table, err = pivot.Pivot(rows, sel, opts)
		if err != nil {
			err = fmt.Errorf("%s pivot: %w", name, err)
			return
		}
		*dst = table
	}

	year := a.cfg.CrossSectionYear
	build(&c.surveyMedian, "survey median series", surveyRows, pivot.ByOrganisation(a.cfg.MedianOrganisation), pivot.Options{})
	build(&c.surveyOrgYear, "survey organisation cross-section", surveyRows, pivot.ByYear(year), surveyOrgOpts)
	build(&c.surveyDeptYear, "survey department cross-section", surveyRows, pivot.ByYear(year), surveyDeptOpts)
	build(&c.surveyOrgPanel, "survey organisation panel", surveyRows, pivot.Panel(), surveyOrgOpts)
	build(&c.surveyDeptPanel, "survey department panel", surveyRows, pivot.Panel(), surveyDeptOpts)

	build(&c.payMedian, "pay median series", payRows, pivot.ByOrganisation(a.cfg.SummaryOrganisation), pivot.Options{})
	build(&c.payOrgYear, "pay organisation cross-section", payRows, pivot.ByYear(year), payOrgOpts)
	build(&c.payDeptYear, "pay department cross-section", payRows, pivot.ByYear(year), payDeptOpts)
	build(&c.payOrgPanel, "pay organisation panel", payRows, pivot.Panel(), payOrgOpts)
	build(&c.payDeptPanel, "pay department panel", payRows, pivot.Panel(), payDeptOpts)

	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *Pay) deflatorSeries(cpi []dataset.CPIObservation) (*deflate.Series, error) {
	monthly := ons.FilterMonth(cpi, a.cfg.CPIMonth, a.cfg.PayMinYear, a.cfg.PayMaxYear)
	series, err := deflate.NewSeries(monthly, a.cfg.CPIBaseYear)
	if err != nil {
		return nil, fmt.Errorf("build deflator series: %w", err)
	}
	return series, nil
}

// analyseMedianSeries regresses the civil-service median EEI and pay theme
// scores on median pay over time, in nominal and real terms.
func (a *Pay) analyseMedianSeries(ctx context.Context, c *cuts, cleanedPay []dataset.PayRecord, series *deflate.Series) error {
	joined, err := Join(c.surveyMedian, c.payMedian, pivot.AxisByOrganisation)
	if err != nil {
		return fmt.Errorf("median series join: %w", err)
	}

	realPayRows := pivot.FromPay(deflate.DeflatePay(cleanedPay, series))
	payMedianReal, err := pivot.Pivot(realPayRows, pivot.ByOrganisation(a.cfg.SummaryOrganisation), pivot.Options{})
	if err != nil {
		return fmt.Errorf("real-terms pay median pivot: %w", err)
	}
	joinedReal, err := Join(c.surveyMedian, payMedianReal, pivot.AxisByOrganisation)
	if err != nil {
		return fmt.Errorf("real-terms median series join: %w", err)
	}

	grade := a.cfg.TargetGrade
	for _, target := range []struct {
		yLabel string
		what   string
	}{
		{a.cfg.EEILabel, "EEI score"},
		{a.cfg.PayThemeLabel, "pay and benefits score"},
	} {
		if a.cfg.PlotDir != "" {
			path := fmt.Sprintf("%s/median_%s.png", a.cfg.PlotDir, slugLabel(target.yLabel))
			if err := plot.Scatter(joined, config.MedianSalaryLabel, target.yLabel, path, plot.ScatterOptions{
				Hue:     plot.HueYear,
				BestFit: true,
			}); err != nil {
				return err
			}
		}

		desc := fmt.Sprintf("Civil service median %s vs median %s pay, over time", target.what, grade)
		res := regression.SimpleOLS(joined.Column(config.MedianSalaryLabel), joined.Column(target.yLabel))
		a.sink.SimpleOLS(target.yLabel, config.MedianSalaryLabel, desc, res)

		realDesc := fmt.Sprintf("%s, real terms (%d prices)", desc, series.BaseYear())
		realRes := regression.SimpleOLS(joinedReal.Column(config.MedianSalaryLabel), joinedReal.Column(target.yLabel))
		a.sink.SimpleOLS(target.yLabel, config.MedianSalaryLabel, realDesc, realRes)
	}

	a.sink.MissingValues(joined, config.MedianSalaryLabel, "median series")
	a.logger.InfoContext(ctx, "analysed median series", "rows", len(joined.Rows))
	return nil
}

// analyseCrossSection joins one cross-section year of survey and pay data
// on organisation and fits the simple regressions.
func (a *Pay) analyseCrossSection(ctx context.Context, surveySide, paySide *pivot.WideTable, desc, prefix string) error {
	joined, err := Join(surveySide, paySide, pivot.AxisByYear)
	if err != nil {
		return fmt.Errorf("%s join: %w", desc, err)
	}

	for _, yLabel := range []string{a.cfg.EEILabel, a.cfg.PayThemeLabel} {
		if a.cfg.PlotDir != "" {
			path := fmt.Sprintf("%s/%s_%s.png", a.cfg.PlotDir, prefix, slugLabel(yLabel))
			if err := plot.Scatter(joined, config.MedianSalaryLabel, yLabel, path, plot.ScatterOptions{
				Hue:     plot.HueOrgType,
				BestFit: true,
			}); err != nil {
				return err
			}
		}
		res := regression.SimpleOLS(joined.Column(config.MedianSalaryLabel), joined.Column(yLabel))
		a.sink.SimpleOLS(yLabel, config.MedianSalaryLabel, desc, res)
	}

	a.sink.MissingValues(joined, config.MedianSalaryLabel, desc)
	a.logger.InfoContext(ctx, "analysed cross-section", "description", desc, "rows", len(joined.Rows))
	return nil
}

// analysePanel joins the panel cuts on (organisation, year) and fits the
// two-way fixed-effects regressions.
func (a *Pay) analysePanel(ctx context.Context, surveySide, paySide *pivot.WideTable, desc string) error {
	joined, err := Join(surveySide, paySide, pivot.AxisPanel)
	if err != nil {
		return fmt.Errorf("%s join: %w", desc, err)
	}

	for _, yLabel := range []string{a.cfg.EEILabel, a.cfg.PayThemeLabel} {
		obs, err := PanelObservations(joined, config.MedianSalaryLabel, yLabel)
		if err != nil {
			return err
		}
		res := regression.TwoWayFixedEffects(obs)
		a.sink.FixedEffects(yLabel, config.MedianSalaryLabel, desc, res)
	}

	a.sink.MissingValues(joined, config.MedianSalaryLabel, desc)
	a.logger.InfoContext(ctx, "analysed panel", "description", desc, "rows", len(joined.Rows))
	return nil
}

func slugLabel(label string) string {
	out := make([]rune, 0, len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '_')
		}
	}
	return string(out)
}
