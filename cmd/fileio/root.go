package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/fileio"
	"github.com/tsawler/fileio/internal/config"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
	porter *fileio.Porter
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fileio",
		Short: "Export, import and detect CSV, JSON, XML, Excel, PDF and binary files",
		Long: `fileio reads and writes tabular, document and object data in several file formats.

Settings come from an optional YAML file (--config); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newDemoCmd(a),
		newDetectCmd(a),
		newInspectCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and Porter.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	comma, err := cfg.Comma()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.porter = fileio.New().
		Output(cmd.OutOrStdout()).
		Logger(logger).
		Comma(comma).
		Indent(cfg.XML.Indent).
		Compress(cfg.PDF.Compress)

	logger.Debug("configuration loaded", "config", a.configPath, "output_dir", cfg.OutputDir)
	return nil
}
