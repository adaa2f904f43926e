package main

import (
	"context"
	"fmt"

	engine "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func (a *app) schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print JSON schemas for editor validation",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Schema of the configuration file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return printSchema(cmd, config.GenerateSchemaJSON)
				},
			},
			{
				Name:  "backtest",
				Usage: "Schema of the backtest section",
				Action: func(_ context.Context, cmd *cli.Command) error {
					backtestConfig := engine.EmptyConfig()

					return printSchema(cmd, backtestConfig.GenerateSchemaJSON)
				},
			},
			{
				Name:  "download",
				Usage: "Schema of a provider's JSON download configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "provider",
						Aliases:  []string{"p"},
						Usage:    "Data provider",
						Required: true,
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return printSchema(cmd, func() (string, error) {
						return marketdata.GetDownloadConfigSchema(cmd.String("provider"))
					})
				},
			},
		},
	}
}

func printSchema(cmd *cli.Command, generate func() (string, error)) error {
	schema, err := generate()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(output(cmd), schema)

	return err
}
