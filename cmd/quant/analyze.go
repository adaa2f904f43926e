package main

import (
	"context"
	"os"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/quant"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func (a *app) riskCommand() *cli.Command {
	return &cli.Command{
		Name:  "risk",
		Usage: "Compute the risk metrics of an instrument against the benchmark",
		Flags: rangeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := a.service()
			if err != nil {
				return err
			}
			defer service.Close()

			metrics, err := service.RiskMetrics(ctx, cmd.String("symbol"), cmd.Timestamp("start"), cmd.Timestamp("end"))
			if err != nil {
				return err
			}

			return printYAML(cmd, metrics)
		},
	}
}

func (a *app) indicatorCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicator",
		Usage: "Calculate technical indicators over the price history",
		Flags: append(rangeFlags(),
			&cli.StringSliceFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Indicator to calculate, repeatable. Every indicator when omitted.",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := a.service()
			if err != nil {
				return err
			}
			defer service.Close()

			values, err := service.Indicators(ctx, cmd.String("symbol"), cmd.Timestamp("start"), cmd.Timestamp("end"), cmd.StringSlice("name"))
			if err != nil {
				return err
			}

			return printYAML(cmd, values)
		},
	}
}

func (a *app) decideCommand() *cli.Command {
	return &cli.Command{
		Name:  "decide",
		Usage: "Evaluate every strategy and combine the signals into a buy, sell or hold decision",
		Flags: append(rangeFlags(),
			&cli.FloatFlag{
				Name:  "sentiment",
				Usage: "Sentiment score in [-1, 1] overriding the configured scores",
			},
			&cli.FloatSliceFlag{
				Name:  "prediction",
				Usage: "Model forecast blended into the hybrid score, up to three",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := a.service()
			if err != nil {
				return err
			}
			defer service.Close()

			decision, err := service.Decide(ctx, quant.Request{
				Symbol:      cmd.String("symbol"),
				Start:       cmd.Timestamp("start"),
				End:         cmd.Timestamp("end"),
				Sentiment:   sentimentFlag(cmd),
				Predictions: cmd.FloatSlice("prediction"),
			})
			if err != nil {
				return err
			}

			return printYAML(cmd, decision)
		},
	}
}

func (a *app) backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Simulate strategies over the price history",
		Flags: append(rangeFlags(),
			&cli.StringSliceFlag{
				Name:  "strategy",
				Usage: "Strategy to simulate, repeatable. The whole panel when omitted.",
			},
			&cli.FloatFlag{
				Name:  "sentiment",
				Usage: "Sentiment score in [-1, 1] held for the whole run",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			strategies, err := parseStrategies(cmd.StringSlice("strategy"))
			if err != nil {
				return err
			}

			service, err := a.service()
			if err != nil {
				return err
			}
			defer service.Close()

			reports, err := service.Backtest(ctx, quant.BacktestRequest{
				Symbol:     cmd.String("symbol"),
				Start:      cmd.Timestamp("start"),
				End:        cmd.Timestamp("end"),
				Strategies: strategies,
				Sentiment:  sentimentFlag(cmd),
			}, a.progressCallbacks())
			if err != nil {
				return err
			}

			for _, report := range reports {
				a.log.Info("Backtest finished",
					zap.String("strategy", string(report.Strategy)),
					zap.Float64("total_return", report.TotalReturn),
					zap.Float64("buy_and_hold_return", report.BuyAndHoldReturn),
					zap.Int("trades", report.NumberOfTrades),
				)
			}

			return printYAML(cmd, reports)
		},
	}
}

// progressCallbacks draws one progress bar per strategy run on stderr.
func (a *app) progressCallbacks() engine.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onRunStart := engine.OnRunStartCallback(func(_ string, symbol string, strategyName types.StrategyName, total int) error {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(symbol+" "+string(strategyName)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		return nil
	})

	onProcessData := engine.OnProcessDataCallback(func(current int, _ int) error {
		if bar != nil {
			_ = bar.Set(current)
		}

		return nil
	})

	onRunEnd := engine.OnRunEndCallback(func(string, types.BacktestReport) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	return engine.LifecycleCallbacks{
		OnRunStart:    &onRunStart,
		OnProcessData: &onProcessData,
		OnRunEnd:      &onRunEnd,
	}
}

func parseStrategies(raw []string) ([]types.StrategyName, error) {
	strategies := make([]types.StrategyName, 0, len(raw))

	for _, name := range raw {
		if name == "all" {
			return nil, nil
		}

		parsed, err := types.ParseStrategyName(name)
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, parsed)
	}

	return strategies, nil
}

func sentimentFlag(cmd *cli.Command) optional.Option[float64] {
	if !cmd.IsSet("sentiment") {
		return optional.None[float64]()
	}

	return optional.Some(cmd.Float("sentiment"))
}
