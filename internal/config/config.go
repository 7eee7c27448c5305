package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gohypo-sis/internal/errors"
)

// Config represents the complete application configuration for a single
// enumeration run.
type Config struct {
	Run    RunConfig    `validate:"required"`
	Paths  PathConfig   `validate:"required"`
	Output OutputConfig `validate:"required"`
}

// RunConfig holds the statistical parameters of the search.
type RunConfig struct {
	Alpha float64 // target family-wise error rate
	LMax  int     // interval length cap, 0 disables the cap
}

// PathConfig holds the three input file paths described in spec §1: the
// binary sequence matrix, the binary outcome vector, and the per-stratum
// sizes.
type PathConfig struct {
	DatasetFile    string `validate:"required"`
	LabelsFile     string `validate:"required"`
	CovariatesFile string `validate:"required"`
}

// OutputConfig controls where and which reporting artifacts get written.
type OutputConfig struct {
	Dir             string
	EmitTestable    bool
	EmitHistogram   bool
	EmitXLSX        bool
	EmitHTMLSummary bool
	// TestablePath overrides the default dir/testable.csv location for the
	// optional testable-p-value CSV, mirroring the original's -pval_file
	// flag. Empty means use the default location.
	TestablePath string
}

// Overrides carries CLI-flag-sourced values that take priority over
// environment variables when present. A nil pointer or empty string means
// "not given on the command line, fall back to the environment/default".
type Overrides struct {
	Alpha          *float64
	LMax           *int
	DatasetFile    string
	LabelsFile     string
	CovariatesFile string
	OutputDir      string
	EmitTestable   *bool
	EmitXLSX       *bool
	EmitHTML       *bool
	PValuesFile    string
}

// Load reads a .env file if present, then environment variables, and
// validates the result. Missing required paths are a configuration error,
// not a panic: the CLI reports them and exits non-zero.
func Load() (*Config, error) {
	return LoadWithOverrides(Overrides{})
}

// LoadWithOverrides is like Load but applies o on top of the
// environment-derived configuration before validating, so CLI flags can
// take priority over .env/environment variables.
func LoadWithOverrides(o Overrides) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Run:    loadRunConfig(),
		Paths:  loadPathConfig(),
		Output: loadOutputConfig(),
	}

	applyOverrides(cfg, o)

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.Alpha != nil {
		cfg.Run.Alpha = *o.Alpha
	}
	if o.LMax != nil {
		cfg.Run.LMax = *o.LMax
	}
	if o.DatasetFile != "" {
		cfg.Paths.DatasetFile = o.DatasetFile
	}
	if o.LabelsFile != "" {
		cfg.Paths.LabelsFile = o.LabelsFile
	}
	if o.CovariatesFile != "" {
		cfg.Paths.CovariatesFile = o.CovariatesFile
	}
	if o.OutputDir != "" {
		cfg.Output.Dir = o.OutputDir
	}
	if o.EmitTestable != nil {
		cfg.Output.EmitTestable = *o.EmitTestable
	}
	if o.EmitXLSX != nil {
		cfg.Output.EmitXLSX = *o.EmitXLSX
	}
	if o.EmitHTML != nil {
		cfg.Output.EmitHTMLSummary = *o.EmitHTML
	}
	if o.PValuesFile != "" {
		cfg.Output.TestablePath = o.PValuesFile
		cfg.Output.EmitTestable = true
	}
}

func loadRunConfig() RunConfig {
	return RunConfig{
		Alpha: getEnvFloatOrDefault("SIS_ALPHA", 0.05),
		LMax:  getEnvIntOrDefault("SIS_LMAX", 0),
	}
}

func loadPathConfig() PathConfig {
	return PathConfig{
		DatasetFile:    os.Getenv("SIS_DATASET_FILE"),
		LabelsFile:     os.Getenv("SIS_LABELS_FILE"),
		CovariatesFile: os.Getenv("SIS_COVARIATES_FILE"),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:             getEnvOrDefault("SIS_OUTPUT_DIR", "."),
		EmitTestable:    getEnvBoolOrDefault("SIS_EMIT_TESTABLE", false),
		EmitHistogram:   getEnvBoolOrDefault("SIS_EMIT_HISTOGRAM", true),
		EmitXLSX:        getEnvBoolOrDefault("SIS_EMIT_XLSX", false),
		EmitHTMLSummary: getEnvBoolOrDefault("SIS_EMIT_HTML", false),
		TestablePath:    getEnvOrDefault("SIS_PVALUES_FILE", ""),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Run.Alpha <= 0 || cfg.Run.Alpha >= 1 {
		return errors.ConfigInvalid("SIS_ALPHA must be in (0,1)")
	}
	if cfg.Run.LMax < 0 {
		return errors.ConfigInvalid("SIS_LMAX must be >= 0")
	}
	if cfg.Paths.DatasetFile == "" || cfg.Paths.LabelsFile == "" || cfg.Paths.CovariatesFile == "" {
		return errors.ConfigInvalid("dataset, labels and covariates file paths are required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
