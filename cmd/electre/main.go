package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ritzau/electre-kernel/pkg/config"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/output"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "electre",
		Short: "Electre outranking tools: kernel extraction and relation cuts",
		Long: `electre works on XMCDA 2.2 input directories.

  electre kernel -i DIR -o DIR   find the kernel of an outranking relation
  electre cut -i DIR -o DIR      cut a credibility matrix into crisp relations
  electre serve --port N         serve both operations over HTTP

Settings are read from flags, ELECTRE_* environment variables,
method_parameters.xml in the input directory and electre.toml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("verbosity", "", "log level: trace, debug, info, warn or error")
	root.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().String("log-format", "text", "log format: text or json")
	root.PersistentFlags().String("config", config.DefaultFile, "path to a TOML config file")
	root.PersistentFlags().Bool("color", true, "colorize console reports")

	root.AddCommand(newKernelCmd())
	root.AddCommand(newCutCmd())
	root.AddCommand(newServeCmd())
	return root
}

// loadConfig resolves configuration for cmd and applies the logging settings.
// params are method parameters read from the input directory, if any.
func loadConfig(cmd *cobra.Command, params map[string]any) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), params)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}
	logging.SetLevel(level)
	logging.SetJSONOutput(cfg.LogFormat == "json")
	if !cfg.Color {
		output.SetColor(false)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
