package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drone/drone-xml-html/plugin"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "xml2html [flags] <xml-file>",
		Short:         "Convert JUnit or generic XML files into HTML reports",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runConvert,
	}
	registerFlags(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("parse --config: %w", err)
	}
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())

	results, err := plugin.Run(cmd.Context(), cfg.Args(args[0]))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.OutputType == plugin.OutputTypeCode {
		fmt.Fprintln(out, results.Outputs[plugin.OutputHTMLContent])
		return nil
	}
	for _, file := range results.Files {
		fmt.Fprintln(out, file)
	}
	return nil
}
