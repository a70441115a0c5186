package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func registerFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("config", "", "YAML file with default options")
	flags.StringP("mode", "m", d.Mode, "conversion mode (report|generic)")
	flags.StringP("format", "f", d.OutputFormat, "output format (full|table|summary|compact|all)")
	flags.String("output-type", d.OutputType, "write files or print the HTML (file|code)")
	flags.StringP("output", "o", "", "base name of the generated files")
	flags.String("output-dir", "", "directory for the generated files")
	flags.String("title", "", "page title")
	flags.String("table-class", "", "CSS class of the table")
	flags.Bool("no-styles", false, "omit the embedded table styles")
	flags.Bool("hide-suite-info", false, "omit the suite columns")
	flags.Bool("hide-timestamps", false, "omit the timestamp columns")
	flags.Bool("hide-attributes", false, "omit the attributes column")
	flags.Bool("hide-hierarchy", false, "omit the parent and level columns")
	flags.Int("max-text-length", d.MaxTextLength, "truncate element content after this many characters (0 disables)")
	flags.Bool("fail-if-no-results", false, "fail when no records are extracted")
	flags.String("log-level", d.LogLevel, "log level (debug|info|warn|error)")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()

	stringFlags := []struct {
		name   string
		target *string
	}{
		{"mode", &cfg.Mode},
		{"format", &cfg.OutputFormat},
		{"output-type", &cfg.OutputType},
		{"output", &cfg.OutputFilename},
		{"output-dir", &cfg.OutputDir},
		{"title", &cfg.Title},
		{"table-class", &cfg.TableClass},
		{"log-level", &cfg.LogLevel},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.target = v
	}

	// the negated flags turn a default-on option off
	negated := []struct {
		name   string
		target *bool
	}{
		{"no-styles", &cfg.IncludeStyles},
		{"hide-suite-info", &cfg.ShowSuiteInfo},
		{"hide-timestamps", &cfg.ShowTimestamps},
		{"hide-attributes", &cfg.ShowAttributes},
		{"hide-hierarchy", &cfg.ShowHierarchy},
	}
	for _, f := range negated {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetBool(f.name)
		if err != nil {
			return fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.target = !v
	}

	if flags.Changed("fail-if-no-results") {
		v, err := flags.GetBool("fail-if-no-results")
		if err != nil {
			return fmt.Errorf("parse --fail-if-no-results: %w", err)
		}
		cfg.FailIfNoResults = v
	}

	if flags.Changed("max-text-length") {
		v, err := flags.GetInt("max-text-length")
		if err != nil {
			return fmt.Errorf("parse --max-text-length: %w", err)
		}
		cfg.MaxTextLength = v
	}

	return nil
}
