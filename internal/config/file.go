package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/agbru/xl2pdf/internal/errors"
)

// fileKey maps a config file key to the flags that take precedence over it.
type fileKey struct {
	key   string
	flags []string
	apply func(*AppConfig, *viper.Viper)
}

var fileKeys = []fileKey{
	{"engine", []string{"engine"}, func(c *AppConfig, v *viper.Viper) { c.Engine = v.GetString("engine") }},
	{"quality", []string{"quality"}, func(c *AppConfig, v *viper.Viper) { c.Quality = v.GetString("quality") }},
	{"file_timeout", []string{"file-timeout"}, func(c *AppConfig, v *viper.Viper) { c.FileTimeout = v.GetDuration("file_timeout") }},
	{"folder", []string{"folder"}, func(c *AppConfig, v *viper.Viper) { c.Folder = v.GetBool("folder") }},
	{"tui", []string{"tui"}, func(c *AppConfig, v *viper.Viper) { c.TUI = v.GetBool("tui") }},
	{"quiet", []string{"quiet", "q"}, func(c *AppConfig, v *viper.Viper) { c.Quiet = v.GetBool("quiet") }},
	{"no_color", []string{"no-color"}, func(c *AppConfig, v *viper.Viper) { c.NoColor = v.GetBool("no_color") }},
	{"log_level", []string{"log-level"}, func(c *AppConfig, v *viper.Viper) { c.LogLevel = v.GetString("log_level") }},
	{"log_file", []string{"log-file"}, func(c *AppConfig, v *viper.Viper) { c.LogFile = v.GetString("log_file") }},
	{"metrics_file", []string{"metrics-file"}, func(c *AppConfig, v *viper.Viper) { c.MetricsFile = v.GetString("metrics_file") }},
	{"report", []string{"report"}, func(c *AppConfig, v *viper.Viper) { c.Report = v.GetString("report") }},
	{"container_image", []string{"container-image"}, func(c *AppConfig, v *viper.Viper) { c.ContainerImage = v.GetString("container_image") }},
	{"soffice_path", []string{"soffice"}, func(c *AppConfig, v *viper.Viper) { c.SofficePath = v.GetString("soffice_path") }},
}

// configCandidates lists the files searched when no config file is given.
func configCandidates() []string {
	candidates := []string{"xl2pdf.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "xl2pdf", "config.yaml"))
	}
	return candidates
}

// applyFileConfig loads the YAML config file, if any, and applies its keys
// for every flag not set on the command line. An explicitly named file
// (--config or XL2PDF_CONFIG) must exist; the default locations are optional.
func applyFileConfig(c *AppConfig, fs *flag.FlagSet) error {
	path := c.ConfigFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	explicit := path != ""
	if !explicit {
		for _, candidate := range configCandidates() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit {
			return apperrors.NewConfigError("reading config file %s: %v", path, err)
		}
		return apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}

	for _, k := range fileKeys {
		if isFlagSetAny(fs, k.flags...) || !v.IsSet(k.key) {
			continue
		}
		k.apply(c, v)
	}
	c.ConfigFile = v.ConfigFileUsed()
	return nil
}
