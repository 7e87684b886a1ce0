package main

import (
	"fmt"
	"log/slog"
	"slices"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/sipparse"
	"github.com/ghettovoice/sipparse/internal/errorutil"
	"github.com/ghettovoice/sipparse/internal/log"
)

// errReported is returned by commands that already printed the failure.
const errReported errorutil.Error = "failure reported"

var logFormats = []string{"console", "dev"}

type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	cfg    fileConfig
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logger: log.Noop}

	cmd := &cobra.Command{
		Use:           "sipparse",
		Short:         "Parse SIP protocol text",
		Long:          "Parse SIP URIs, start lines and header values, and compute Digest credentials.",
		Version:       sipparse.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "console", "log format (console|dev)")

	cmd.AddCommand(newEntriesCommand())
	cmd.AddCommand(newParseCommand(opts))
	cmd.AddCommand(newDigestCommand(opts))
	return cmd
}

// init loads the config file and builds the logger, flags take precedence over the file.
func (o *rootOptions) init(cmd *cobra.Command) error {
	if o.ConfigPath != "" {
		cfg, err := loadConfig(o.ConfigPath)
		if err != nil {
			return errtrace.Wrap(err)
		}
		o.cfg = cfg
	}
	flags := cmd.Flags()
	if !flags.Changed("log-level") && o.cfg.Log.Level != "" {
		o.LogLevel = o.cfg.Log.Level
	}
	if !flags.Changed("log-format") && o.cfg.Log.Format != "" {
		o.LogFormat = o.cfg.Log.Format
	}

	if !slices.Contains(logFormats, o.LogFormat) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("log format %q: must be one of %v", o.LogFormat, logFormats))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return errtrace.Wrap(fmt.Errorf("%w: log level %q: %w", errorutil.ErrInvalidArgument, o.LogLevel, err))
	}
	o.logger = log.New(o.LogFormat, cmd.ErrOrStderr(), lvl)
	return nil
}

func newEntriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List parser entry points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range sipparse.EntryPoints() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
