package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)

	assert.Equal(t, "Organisation working file.xlsx", cfg.Sources.SurveyFileName)
	assert.Equal(t, "Data.Collated", cfg.Sources.SurveySheet)
	assert.Equal(t, "Pay working file.xlsx", cfg.Sources.PayFileName)
	assert.Equal(t, "Collated.Organisation x grade", cfg.Sources.PaySheet)

	assert.Equal(t, "https://api.ons.gov.uk", cfg.Sources.ONSBaseURL)
	assert.Equal(t, "d7bt", cfg.Sources.CPISeriesID)
	assert.Equal(t, "mm23", cfg.Sources.CPIDatasetID)
	assert.Equal(t, "March", cfg.Sources.CPIMonth)

	assert.Equal(t, "plots", cfg.Output.PlotDir)

	// Candidate directories are filled when nothing supplies them.
	assert.NotEmpty(t, cfg.Sources.SurveyDirs)
	assert.NotEmpty(t, cfg.Sources.PayDirs)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  output: file
  file_path: /tmp/test.log
sources:
  survey_dirs:
    - /data/survey
  pay_dirs:
    - /data/pay
  survey_sheet: Custom.Sheet
output:
  plot_dir: out/plots
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"/data/survey"}, cfg.Sources.SurveyDirs)
	assert.Equal(t, []string{"/data/pay"}, cfg.Sources.PayDirs)
	assert.Equal(t, "Custom.Sheet", cfg.Sources.SurveySheet)
	assert.Equal(t, "out/plots", cfg.Output.PlotDir)

	// Unset fields still pick up their defaults.
	assert.Equal(t, "Pay working file.xlsx", cfg.Sources.PayFileName)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	t.Setenv("CSPS_LOGGING_LEVEL", "warn")
	t.Setenv("CSPS_SOURCES_CPI_SERIES_ID", "abcd")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "abcd", cfg.Sources.CPISeriesID)
}

func TestLoadInvalidURL(t *testing.T) {
	t.Setenv("CSPS_SOURCES_ONS_BASE_URL", "not a url")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConditionsAndRenamesAreConsistent(t *testing.T) {
	// Every canonical spelling used by the department-only rules must be
	// producible by a rename or be a raw dataset name; the DfE group name is
	// the renamed form on both sides.
	canonical := "Department for Education/Department for Education group"
	assert.Contains(t, SurveyDeptOnly.IncludeOrgs, canonical)

	var surveyTargets []string
	for _, v := range SurveyRenames {
		surveyTargets = append(surveyTargets, v)
	}
	assert.Contains(t, surveyTargets, canonical)

	var payTargets []string
	for _, v := range PayRenames {
		payTargets = append(payTargets, v)
	}
	assert.Contains(t, payTargets, canonical)
}
