package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/drone/drone-xml-html/plugin"
)

// Config captures CLI options sourced from a config file or flags.
type Config struct {
	Mode           string `yaml:"mode"`
	OutputType     string `yaml:"output_type"`
	OutputFormat   string `yaml:"output_format"`
	OutputFilename string `yaml:"output_filename"`
	OutputDir      string `yaml:"output_dir"`
	Title          string `yaml:"title"`
	TableClass     string `yaml:"table_class"`

	IncludeStyles  bool `yaml:"include_styles"`
	ShowSuiteInfo  bool `yaml:"show_suite_info"`
	ShowTimestamps bool `yaml:"show_timestamps"`
	ShowAttributes bool `yaml:"show_attributes"`
	ShowHierarchy  bool `yaml:"show_hierarchy"`
	MaxTextLength  int  `yaml:"max_text_length"`

	FailIfNoResults bool   `yaml:"fail_if_no_results"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the configuration used when no flags or config file
// specify values. It matches the plugin's environment defaults.
func Default() Config {
	return Config{
		Mode:           plugin.ModeReport,
		OutputType:     plugin.OutputTypeFile,
		OutputFormat:   plugin.FormatFull,
		IncludeStyles:  true,
		ShowSuiteInfo:  true,
		ShowTimestamps: true,
		ShowAttributes: true,
		ShowHierarchy:  true,
		MaxTextLength:  100,
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path on top of the defaults. Keys absent from
// the file keep their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse config %q", path)
	}
	return cfg, nil
}

// Args converts the configuration into plugin arguments for xmlFile.
func (c Config) Args(xmlFile string) plugin.Args {
	return plugin.Args{
		XMLFile:         xmlFile,
		Mode:            c.Mode,
		OutputType:      c.OutputType,
		OutputFormat:    c.OutputFormat,
		OutputFilename:  c.OutputFilename,
		OutputDir:       c.OutputDir,
		Title:           c.Title,
		TableClass:      c.TableClass,
		IncludeStyles:   c.IncludeStyles,
		ShowSuiteInfo:   c.ShowSuiteInfo,
		ShowTimestamps:  c.ShowTimestamps,
		ShowAttributes:  c.ShowAttributes,
		ShowHierarchy:   c.ShowHierarchy,
		MaxTextLength:   c.MaxTextLength,
		FailIfNoResults: c.FailIfNoResults,
		Level:           c.LogLevel,
	}
}
