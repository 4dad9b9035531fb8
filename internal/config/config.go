package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete runtime configuration for an analysis run.
// Values come from an optional YAML file overlaid by CSPS_-prefixed
// environment variables.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Sources SourcesConfig `yaml:"sources" envconfig:"SOURCES"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
}

// LoggingConfig controls the slog logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/cspspay.log"`
}

// SourcesConfig locates the two spreadsheet sources and the price index API.
// Each workbook may live in any of several candidate directories, probed in
// order; the first directory containing the file wins.
type SourcesConfig struct {
	SurveyDirs     []string `yaml:"survey_dirs" envconfig:"SURVEY_DIRS" validate:"min=1"`
	SurveyFileName string   `yaml:"survey_file_name" envconfig:"SURVEY_FILE_NAME" default:"Organisation working file.xlsx"`
	SurveySheet    string   `yaml:"survey_sheet" envconfig:"SURVEY_SHEET" default:"Data.Collated"`

	PayDirs     []string `yaml:"pay_dirs" envconfig:"PAY_DIRS" validate:"min=1"`
	PayFileName string   `yaml:"pay_file_name" envconfig:"PAY_FILE_NAME" default:"Pay working file.xlsx"`
	PaySheet    string   `yaml:"pay_sheet" envconfig:"PAY_SHEET" default:"Collated.Organisation x grade"`

	ONSBaseURL   string `yaml:"ons_base_url" envconfig:"ONS_BASE_URL" default:"https://api.ons.gov.uk" validate:"url"`
	CPISeriesID  string `yaml:"cpi_series_id" envconfig:"CPI_SERIES_ID" default:"d7bt"`
	CPIDatasetID string `yaml:"cpi_dataset_id" envconfig:"CPI_DATASET_ID" default:"mm23"`
	CPIMonth     string `yaml:"cpi_month" envconfig:"CPI_MONTH" default:"March"`
}

// OutputConfig controls where plots are written.
type OutputConfig struct {
	PlotDir string `yaml:"plot_dir" envconfig:"PLOT_DIR" default:"plots"`
}

// Load builds the configuration from the optional YAML file and the
// environment, then validates it.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
			}
		}
	}

	// Environment variables override file values.
	if err := envconfig.Process("CSPS", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills source directories when neither file nor environment
// supplied any, matching the working-file layout used by the data team.
func (c *Config) applyDefaults() {
	home, _ := os.UserHomeDir()
	if len(c.Sources.SurveyDirs) == 0 {
		c.Sources.SurveyDirs = []string{
			home + "/Institute for Government/Data - General/Civil service/Civil Service - People Survey",
			home + "/OneDrive - Institute for Government/Data - Civil service/Civil Service - People Survey",
		}
	}
	if len(c.Sources.PayDirs) == 0 {
		c.Sources.PayDirs = []string{
			home + "/Institute for Government/Data - General/Civil service/Civil Service - pay and high pay",
			home + "/OneDrive - Institute for Government/Data - Civil service/Civil Service - pay and high pay",
		}
	}
}
