// =============================================================================
// Daily Report Generator - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration from a YAML
// file. Configuration covers directory layout, input parsing layout, output
// naming, logging, and the schedules used by the watch and serve commands.
//
// All settings have sensible defaults, so an empty (or absent) file yields
// a working configuration for the standard export layout.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config is the main application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is where exports are picked up in batch and watch modes.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is where rendered reports and run logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is where processed inputs are moved after a successful
	// run.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// SkipArchive leaves processed inputs in place instead of moving
	// them to ArchiveDir.
	// Default: false
	SkipArchive bool `yaml:"skip_archive"`

	// ArchiveRetentionDays prunes archived inputs older than this many
	// days during watch passes. Zero keeps everything.
	// Default: 0
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// Parsing controls how input files are read.
	Parsing ParsingSettings `yaml:"parsing"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat names rendered reports. Supports {date} (target
	// date, separators hyphenated), {timestamp}, {time}, and {uuid}
	// placeholders.
	// Default: "nas_report_{date}.pdf"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is the minimum level emitted: debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, duplicates log output into this file.
	// Default: "" (stderr only)
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// SERVICE SETTINGS
	// =========================================================================

	// ServerAddr is the HTTP listen address for the serve command.
	// Default: ":8080"
	ServerAddr string `yaml:"server_addr"`

	// WatchSchedule is the cron expression driving the watch command.
	// Default: "0 6 * * *" (daily at 06:00)
	WatchSchedule string `yaml:"watch_schedule"`
}

// ParsingSettings controls how input files are read.
type ParsingSettings struct {
	// Sheet is the worksheet to read from workbooks. Empty selects the
	// first sheet.
	// Default: ""
	Sheet string `yaml:"sheet"`

	// HeaderRow is the 1-based row holding the column names.
	// Default: 3 (rows 1-2 are export banner rows)
	HeaderRow int `yaml:"header_row"`

	// DataStartRow is the 1-based first data row.
	// Default: HeaderRow + 1
	DataStartRow int `yaml:"data_start_row"`

	// Delimiter is the CSV field separator: ",", ";", "|", or "\t".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults, and validates a configuration file.
//
// PARAMETERS:
//   - path: Path to the YAML configuration file
//
// RETURNS:
//   - The validated configuration
//   - An error if the file cannot be read, parsed, or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills in every unset field.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.Parsing.HeaderRow == 0 {
		cfg.Parsing.HeaderRow = 3
	}
	if cfg.Parsing.DataStartRow == 0 {
		cfg.Parsing.DataStartRow = cfg.Parsing.HeaderRow + 1
	}
	if cfg.Parsing.Delimiter == "" {
		cfg.Parsing.Delimiter = ","
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "nas_report_{date}.pdf"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.WatchSchedule == "" {
		cfg.WatchSchedule = "0 6 * * *"
	}
}

// validate rejects configurations the pipeline cannot run with.
func validate(cfg *Config) error {
	if cfg.Parsing.HeaderRow < 1 {
		return fmt.Errorf("parsing.header_row must be >= 1, got %d", cfg.Parsing.HeaderRow)
	}
	if cfg.Parsing.DataStartRow <= cfg.Parsing.HeaderRow {
		return fmt.Errorf("parsing.data_start_row (%d) must be below the header row (%d)",
			cfg.Parsing.DataStartRow, cfg.Parsing.HeaderRow)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	if cfg.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must be >= 0, got %d", cfg.ArchiveRetentionDays)
	}
	return nil
}
