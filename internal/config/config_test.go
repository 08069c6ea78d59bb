package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./archive", cfg.ArchiveDir)
	assert.False(t, cfg.SkipArchive)
	assert.Equal(t, 0, cfg.ArchiveRetentionDays)
	assert.Equal(t, "", cfg.Parsing.Sheet)
	assert.Equal(t, 3, cfg.Parsing.HeaderRow)
	assert.Equal(t, 4, cfg.Parsing.DataStartRow)
	assert.Equal(t, ",", cfg.Parsing.Delimiter)
	assert.Equal(t, "nas_report_{date}.pdf", cfg.OutputNameFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "0 6 * * *", cfg.WatchSchedule)
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
input_dir: /data/in
log_level: debug
archive_retention_days: 30
parsing:
  sheet: Data
  header_row: 1
output_name_format: "report_{date}_{uuid}.pdf"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.ArchiveRetentionDays)
	assert.Equal(t, "Data", cfg.Parsing.Sheet)
	assert.Equal(t, 1, cfg.Parsing.HeaderRow)
	assert.Equal(t, "report_{date}_{uuid}.pdf", cfg.OutputNameFormat)

	// Unset fields still pick up their defaults.
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Parsing.DataStartRow, "data start defaults to the row after the header")
	assert.Equal(t, ":8080", cfg.ServerAddr)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTempConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadBadYAML(t *testing.T) {
	path := writeTempConfig(t, "input_dir: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadBadLogLevel(t *testing.T) {
	path := writeTempConfig(t, "log_level: loud")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level must be one of")
}

func TestLoadDataStartRowValidation(t *testing.T) {
	path := writeTempConfig(t, `
parsing:
  header_row: 5
  data_start_row: 4
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_start_row")
}

func TestLoadHeaderRowValidation(t *testing.T) {
	path := writeTempConfig(t, `
parsing:
  header_row: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header_row must be >= 1")
}

func TestLoadNegativeRetention(t *testing.T) {
	path := writeTempConfig(t, "archive_retention_days: -7")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive_retention_days must be >= 0")
}
