// Package config parses command-line flags, XL2PDF_ environment variables
// and an optional YAML config file into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/agbru/xl2pdf/internal/engine"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "XL2PDF_"

// Defaults.
const (
	DefaultEngine   = engine.NameAuto
	DefaultQuality  = "standard"
	DefaultLogLevel = "warn"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the application's configuration.
type AppConfig struct {
	// Path is the workbook or folder to convert (positional argument).
	Path string
	// Folder forces folder mode. Without it, the mode follows whether Path
	// is a directory.
	Folder bool
	// Engine selects the conversion backend (auto, excel, soffice, container).
	Engine string
	// Quality is the PDF quality, "standard" or "minimum".
	Quality string
	// FileTimeout bounds the export of one workbook; 0 disables it. The
	// Excel engine cannot interrupt a COM call and only checks it beforehand.
	FileTimeout time.Duration
	// TUI launches the interactive shell.
	TUI bool
	// Quiet suppresses progress output in command-line mode.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// LogLevel is the diagnostic log level.
	LogLevel string
	// LogFile receives diagnostic logs. Empty means stderr in command-line
	// mode and nowhere in the interactive shell.
	LogFile string
	// MetricsFile is a Prometheus textfile written after each batch.
	MetricsFile string
	// Report is a PDF batch report written after each batch.
	Report string
	// ContainerImage is the converter image for the container engine.
	ContainerImage string
	// SofficePath overrides the LibreOffice binary.
	SofficePath string
	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// ToConvertOptions builds the per-file conversion options. The quality must
// already have been validated by ParseConfig.
func (c AppConfig) ToConvertOptions() orchestration.ConvertOptions {
	opts := orchestration.DefaultConvertOptions()
	if q, err := engine.ParseQuality(c.Quality); err == nil {
		opts.Export.Quality = q
	}
	opts.FileTimeout = c.FileTimeout
	return opts
}

// EngineOptions returns the backend options.
func (c AppConfig) EngineOptions() engine.Options {
	return engine.Options{SofficePath: c.SofficePath, ContainerImage: c.ContainerImage}
}

// Request builds the batch request for Path.
func (c AppConfig) Request() orchestration.Request {
	isFolder := c.Folder
	if !isFolder {
		if info, err := os.Stat(c.Path); err == nil && info.IsDir() {
			isFolder = true
		}
	}
	return orchestration.Request{TargetPath: c.Path, IsFolder: isFolder}
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(engine.Names, strings.ToLower(c.Engine)) {
		return apperrors.NewConfigError("unknown engine %q (want one of %s)", c.Engine, strings.Join(engine.Names, ", "))
	}
	if _, err := engine.ParseQuality(c.Quality); err != nil {
		return apperrors.NewConfigError("invalid --quality: %v", err)
	}
	if c.FileTimeout < 0 {
		return apperrors.NewConfigError("--file-timeout must not be negative, got %s", c.FileTimeout)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.NewConfigError("invalid --log-level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is flags, then XL2PDF_ environment variables, then the config
// file, then defaults. It returns flag.ErrHelp for -h/--help.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [PATH]\n\n", programName)
		fmt.Fprintln(errorWriter, "Converts an Excel workbook, or every workbook in a folder, to PDF.")
		fmt.Fprintln(errorWriter, "Without PATH on a terminal, the interactive shell starts.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.Engine, "engine", DefaultEngine, "Conversion engine: "+strings.Join(engine.Names, ", ")+".")
	fs.StringVar(&config.Quality, "quality", DefaultQuality, "PDF quality: standard or minimum.")
	fs.DurationVar(&config.FileTimeout, "file-timeout", 0, "Maximum export time per workbook (e.g. 2m), enforced by the soffice and container engines. 0 disables it.")
	fs.BoolVar(&config.Folder, "folder", false, "Treat PATH as a folder and convert every workbook in it.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive shell.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the summary.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: "+strings.Join(logLevels, ", ")+".")
	fs.StringVar(&config.LogFile, "log-file", "", "Write diagnostic logs to this file.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after each batch.")
	fs.StringVar(&config.Report, "report", "", "Write a PDF batch report to this file after each batch.")
	fs.StringVar(&config.ContainerImage, "container-image", engine.DefaultContainerImage, "Converter image for the container engine.")
	fs.StringVar(&config.SofficePath, "soffice", engine.DefaultSofficeBinary, "LibreOffice binary for the soffice engine.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML config file (default ./xl2pdf.yaml or ~/.config/xl2pdf/config.yaml).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		config.Path = fs.Arg(0)
	default:
		return AppConfig{}, apperrors.NewConfigError("expected at most one PATH, got %d", fs.NArg())
	}

	if config.ShowVersion {
		return config, nil
	}

	if err := applyFileConfig(&config, fs); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}
