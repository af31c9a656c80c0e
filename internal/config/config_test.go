package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/xl2pdf/internal/engine"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
)

// isolate points HOME at an empty directory so no user config file is found.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
}

func TestParseConfig_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := ParseConfig("xl2pdf", []string{"report.xlsx"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "report.xlsx", cfg.Path)
	assert.Equal(t, engine.NameAuto, cfg.Engine)
	assert.Equal(t, "standard", cfg.Quality)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.FileTimeout)
	assert.Equal(t, engine.DefaultContainerImage, cfg.ContainerImage)
	assert.False(t, cfg.TUI)
	assert.Empty(t, cfg.ConfigFile)
}

func TestParseConfig_Flags(t *testing.T) {
	isolate(t)
	args := []string{
		"-engine", "soffice", "-quality", "minimum", "-file-timeout", "90s",
		"-folder", "-q", "-no-color", "-log-level", "debug",
		"-metrics-file", "out.prom", "-report", "batch.pdf", "/data",
	}
	cfg, err := ParseConfig("xl2pdf", args, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "soffice", cfg.Engine)
	assert.Equal(t, "minimum", cfg.Quality)
	assert.Equal(t, 90*time.Second, cfg.FileTimeout)
	assert.True(t, cfg.Folder)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "out.prom", cfg.MetricsFile)
	assert.Equal(t, "batch.pdf", cfg.Report)
	assert.Equal(t, "/data", cfg.Path)

	opts := cfg.ToConvertOptions()
	assert.Equal(t, engine.QualityMinimum, opts.Export.Quality)
	assert.Equal(t, 90*time.Second, opts.FileTimeout)
	assert.True(t, opts.Open.ReadOnly)
}

func TestParseConfig_Errors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown engine", []string{"-engine", "numbers", "a.xlsx"}},
		{"bad quality", []string{"-quality", "best", "a.xlsx"}},
		{"negative timeout", []string{"-file-timeout", "-1s", "a.xlsx"}},
		{"bad log level", []string{"-log-level", "chatty", "a.xlsx"}},
		{"two paths", []string{"a.xlsx", "b.xlsx"}},
		{"unknown flag", []string{"-landscape", "a.xlsx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("xl2pdf", tt.args, &bytes.Buffer{})
			var cfgErr apperrors.ConfigError
			require.True(t, errors.As(err, &cfgErr), "want ConfigError, got %v", err)
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	_, err := ParseConfig("xl2pdf", []string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "Usage: xl2pdf [flags] [PATH]")
	assert.Contains(t, out.String(), "-engine")
	assert.Contains(t, out.String(), "enforced by the soffice and container engines")
}

func TestParseConfig_VersionSkipsValidation(t *testing.T) {
	isolate(t)
	cfg, err := ParseConfig("xl2pdf", []string{"-V", "-engine", "numbers"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("XL2PDF_ENGINE", "container")
	t.Setenv("XL2PDF_QUALITY", "minimum")
	t.Setenv("XL2PDF_FILE_TIMEOUT", "2m")
	t.Setenv("XL2PDF_QUIET", "yes")
	t.Setenv("XL2PDF_LOG_LEVEL", "debug")

	cfg, err := ParseConfig("xl2pdf", []string{"-quality", "standard", "a.xlsx"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "container", cfg.Engine)
	assert.Equal(t, "standard", cfg.Quality, "flag beats env")
	assert.Equal(t, 2*time.Minute, cfg.FileTimeout)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xl2pdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseConfig_FileLayer(t *testing.T) {
	isolate(t)
	path := writeConfigFile(t, `
engine: soffice
quality: minimum
file_timeout: 45s
log_level: debug
soffice_path: /opt/libreoffice/program/soffice
report: last-batch.pdf
`)
	t.Setenv("XL2PDF_LOG_LEVEL", "error")

	cfg, err := ParseConfig("xl2pdf", []string{"-config", path, "-engine", "excel", "a.xlsx"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "excel", cfg.Engine, "flag beats file")
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, "minimum", cfg.Quality)
	assert.Equal(t, 45*time.Second, cfg.FileTimeout)
	assert.Equal(t, "/opt/libreoffice/program/soffice", cfg.SofficePath)
	assert.Equal(t, "last-batch.pdf", cfg.Report)
}

func TestParseConfig_FileFromEnv(t *testing.T) {
	isolate(t)
	path := writeConfigFile(t, "engine: container\n")
	t.Setenv("XL2PDF_CONFIG", path)

	cfg, err := ParseConfig("xl2pdf", []string{"a.xlsx"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "container", cfg.Engine)
}

func TestParseConfig_FileErrors(t *testing.T) {
	isolate(t)
	_, err := ParseConfig("xl2pdf", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	var cfgErr apperrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "missing explicit file: %v", err)

	path := writeConfigFile(t, "engine: [unterminated\n")
	_, err = ParseConfig("xl2pdf", []string{"-config", path}, &bytes.Buffer{})
	assert.True(t, errors.As(err, &cfgErr), "malformed file: %v", err)

	path = writeConfigFile(t, "engine: numbers\n")
	_, err = ParseConfig("xl2pdf", []string{"-config", path}, &bytes.Buffer{})
	assert.True(t, errors.As(err, &cfgErr), "invalid value from file: %v", err)
}

func TestAppConfig_Request(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, AppConfig{Path: dir}.Request().IsFolder, "directories select folder mode")
	assert.False(t, AppConfig{Path: file}.Request().IsFolder)
	assert.False(t, AppConfig{Path: filepath.Join(dir, "missing.xlsx")}.Request().IsFolder)
	assert.True(t, AppConfig{Path: filepath.Join(dir, "missing"), Folder: true}.Request().IsFolder)
}

func TestAppConfig_EngineOptions(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{SofficePath: "/usr/bin/soffice", ContainerImage: "img:1"}
	assert.Equal(t, engine.Options{SofficePath: "/usr/bin/soffice", ContainerImage: "img:1"}, cfg.EngineOptions())
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBoolEnv(tt.in, tt.def), tt.in)
	}
}
