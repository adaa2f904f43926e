package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/quant"
	"github.com/rxtech-lab/argo-quant/internal/trace"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var dateLayouts = []string{time.DateOnly, time.RFC3339}

// app carries the state the Before hook prepares for every command.
type app struct {
	config *config.Config
	log    *logger.Logger
}

func main() {
	if err := newCommand(&app{}).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "quant",
		Usage:   "Risk metrics, strategy signals and backtests over daily price history",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				Sources: cli.EnvVars("QUANT_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Overrides the configured log level (debug, info, warn, error)",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			a.riskCommand(),
			a.indicatorCommand(),
			a.decideCommand(),
			a.backtestCommand(),
			a.downloadCommand(),
			a.schemaCommand(),
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	level := cfg.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}

	// stdout carries the command output
	log, err := logger.NewLoggerWithOutput(level, "stderr")
	if err != nil {
		return ctx, err
	}

	if err := trace.Init(cfg.Trace, version.GetVersion()); err != nil {
		log.Warn("Tracing disabled", zap.Error(err))
	}

	a.config = cfg
	a.log = log

	return ctx, nil
}

func (a *app) after(ctx context.Context, _ *cli.Command) error {
	if err := trace.Shutdown(ctx); err != nil && a.log != nil {
		a.log.Warn("Failed to flush spans", zap.Error(err))
	}

	if a.log != nil {
		_ = a.log.Sync()
	}

	return nil
}

func (a *app) service() (*quant.Service, error) {
	return quant.NewServiceFromConfig(a.config, a.log)
}

// rangeFlags are the instrument and period flags shared by the analysis commands.
func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "symbol",
			Aliases:  []string{"s"},
			Usage:    "Instrument symbol",
			Required: true,
		},
		&cli.TimestampFlag{
			Name:     "start",
			Usage:    "Start date in `YYYY-MM-DD` format",
			Required: true,
			Config:   cli.TimestampConfig{Layouts: dateLayouts},
		},
		&cli.TimestampFlag{
			Name:   "end",
			Usage:  "End date in `YYYY-MM-DD` format. Defaults to today.",
			Value:  time.Now(),
			Config: cli.TimestampConfig{Layouts: dateLayouts},
		},
	}
}

func output(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func printYAML(cmd *cli.Command, value any) error {
	encoder := yaml.NewEncoder(output(cmd))
	encoder.SetIndent(2)

	if err := encoder.Encode(value); err != nil {
		return err
	}

	return encoder.Close()
}
