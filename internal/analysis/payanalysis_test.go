package analysis

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cspspay/internal/config"
	"cspspay/internal/dataset"
	ierrors "cspspay/internal/errors"
	"cspspay/internal/report"
)

func payTestConfig() PayConfig {
	return PayConfig{
		EEILabel:            "Employee Engagement Index",
		ThemeLabels:         []string{"Pay and benefits"},
		PayThemeLabel:       "Pay and benefits",
		MedianOrganisation:  "Civil Service benchmark",
		MeanOrganisation:    "All employees",
		SummaryOrganisation: "All employees",
		TargetGrade:         "SEO/HEO",
		SurveyMinYear:       2023,
		SurveyMaxYear:       2024,
		SurveyMeanMinYear:   2023,
		PayMinYear:          2023,
		PayMaxYear:          2024,
		CrossSectionYear:    2024,
		SurveyDeptOnly:      config.Conditions{OrgTypeFilter: []string{"Ministerial department"}},
		PayDeptOnly:         config.Conditions{OrgTypeFilter: []string{"Ministerial department"}},
		CPIMonth:            "March",
		CPIBaseYear:         2024,
	}
}

func payTestSurvey() []dataset.SurveyRecord {
	values := map[string]map[int]map[string]float64{
		"Civil Service benchmark": {
			2023: {"Employee Engagement Index": 64, "Pay and benefits": 30},
			2024: {"Employee Engagement Index": 65, "Pay and benefits": 33},
		},
		"All employees": {
			2023: {"Employee Engagement Index": 63, "Pay and benefits": 29},
			2024: {"Employee Engagement Index": 64, "Pay and benefits": 32},
		},
		"OrgA": {
			2023: {"Employee Engagement Index": 68, "Pay and benefits": 35},
			2024: {"Employee Engagement Index": 70, "Pay and benefits": 38},
		},
		"OrgB": {
			2023: {"Employee Engagement Index": 66, "Pay and benefits": 31},
			2024: {"Employee Engagement Index": 65, "Pay and benefits": 30},
		},
	}
	orgTypes := map[string]string{
		"Civil Service benchmark": "Benchmark",
		"All employees":           "Benchmark",
		"OrgA":                    "Ministerial department",
		"OrgB":                    "Ministerial department",
	}

	var records []dataset.SurveyRecord
	for org, years := range values {
		for year, labels := range years {
			for label, value := range labels {
				records = append(records, dataset.SurveyRecord{
					Organisation: org,
					DeptGroup:    "GroupA",
					OrgType:      orgTypes[org],
					Year:         year,
					Section:      dataset.SectionThemeScores,
					Label:        label,
					Value:        value,
				})
			}
		}
	}
	return records
}

func payTestPay() []dataset.PayRecord {
	salaries := map[string]map[int]float64{
		"All employees": {2023: 30000, 2024: 32000},
		"OrgA":          {2023: 30000, 2024: 35000},
		"OrgB":          {2023: 31000, 2024: 33000},
	}
	orgTypes := map[string]string{
		"All employees": "Summary",
		"OrgA":          "Ministerial department",
		"OrgB":          "Ministerial department",
	}

	var records []dataset.PayRecord
	for org, years := range salaries {
		for year, salary := range years {
			records = append(records, dataset.PayRecord{
				Organisation: org,
				DeptGroup:    "GroupA",
				OrgType:      orgTypes[org],
				Year:         year,
				Grade:        "SEO/HEO",
				MedianSalary: salary,
			})
		}
	}
	return records
}

func payTestCPI() []dataset.CPIObservation {
	return []dataset.CPIObservation{
		{Year: 2023, Month: "March", Value: 120},
		{Year: 2023, Month: "April", Value: 121},
		{Year: 2024, Month: "March", Value: 126},
	}
}

func TestPayAnalysisEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	runner := NewPay(payTestConfig(), report.NewSink(&buf), nil)

	err := runner.Run(context.Background(), payTestSurvey(), payTestPay(), payTestCPI())
	require.NoError(t, err)

	out := buf.String()

	// Median series over time, nominal and real terms.
	assert.Contains(t, out, "Civil service median EEI score vs median SEO/HEO pay, over time")
	assert.Contains(t, out, "over time, real terms (2024 prices)")
	assert.Contains(t, out, "Civil service median pay and benefits score vs median SEO/HEO pay, over time")

	// Cross-sections for organisations and departments.
	assert.Contains(t, out, "Regression results for Employee Engagement Index vs Median salary (2024 organisation-level data):")
	assert.Contains(t, out, "Regression results for Pay and benefits vs Median salary (2024 organisation-level data, depts only):")

	// Two-way fixed-effects panels.
	assert.Contains(t, out, "Two-way fixed effects results for Employee Engagement Index vs Median salary (Organisation-level panel data):")
	assert.Contains(t, out, "Two-way fixed effects results for Pay and benefits vs Median salary (Organisation-level panel data, depts only):")

	// Legend closes the report.
	assert.Contains(t, out, "Significance levels:")
	assert.Contains(t, out, "R-squared thresholds:")
}

func TestPayAnalysisReconciliationFailureIsTerminal(t *testing.T) {
	pay := append(payTestPay(), dataset.PayRecord{
		Organisation: "Pay-only agency",
		DeptGroup:    "GroupA",
		OrgType:      "Executive agency",
		Year:         2024,
		Grade:        "SEO/HEO",
		MedianSalary: 28000,
	})

	var buf bytes.Buffer
	runner := NewPay(payTestConfig(), report.NewSink(&buf), nil)

	err := runner.Run(context.Background(), payTestSurvey(), pay, payTestCPI())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ierrors.New(ierrors.CodeReconciliation, "")))
	assert.Contains(t, err.Error(), "Pay-only agency")
}

func TestPayAnalysisMissingCPIBaseYearIsTerminal(t *testing.T) {
	cpi := []dataset.CPIObservation{
		{Year: 2023, Month: "March", Value: 120},
	}

	var buf bytes.Buffer
	runner := NewPay(payTestConfig(), report.NewSink(&buf), nil)

	err := runner.Run(context.Background(), payTestSurvey(), payTestPay(), cpi)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ierrors.New(ierrors.CodePrecondition, "")))
}

// A suppressed salary must surface in the missing-records listing while the
// rest of the analysis proceeds.
func TestPayAnalysisReportsSuppressedSalaries(t *testing.T) {
	pay := payTestPay()
	for i := range pay {
		if pay[i].Organisation == "OrgB" && pay[i].Year == 2024 {
			pay[i].MedianSalary = dataset.Missing()
		}
	}

	var buf bytes.Buffer
	runner := NewPay(payTestConfig(), report.NewSink(&buf), nil)

	err := runner.Run(context.Background(), payTestSurvey(), pay, payTestCPI())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Records with missing Median salary")
}
