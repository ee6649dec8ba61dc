package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/logger"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "chirp",
		Short:        "Minimal tweet backend",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(newServeCmd(opts), newMigrateCmd(opts))
	return cmd
}

// setup loads configuration and builds the process logger.
func (o *rootOptions) setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, logger.Setup(cfg.LogLevel, cfg.LogFormat), nil
}
