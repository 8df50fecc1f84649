package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/terralift/terralift/internal/config"
)

var cfg *config.Configuration

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "terralift",
		Short:         "Terraform stack lifecycle agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd.Flags())

			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to the configuration file")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: console, json")

	root.AddCommand(newServeCommand())
	root.AddCommand(newTfCommand())
	root.AddCommand(newTfActionCommand())
	return root
}

// applyFlagOverrides lets explicit CLI flags win over the config file.
func applyFlagOverrides(flags *pflag.FlagSet) {
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := flags.GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}
}

func buildLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
