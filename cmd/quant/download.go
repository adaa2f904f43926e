package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func (a *app) downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download historical bars into a parquet file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
				Value:   string(marketdata.ProviderPolygon),
			},
			&cli.StringFlag{
				Name:  "json-config",
				Usage: "JSON download configuration file. Replaces the ticker, date and interval flags.",
			},
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Ticker symbol",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start date in `YYYY-MM-DD` format",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value: time.Now().Format(time.DateOnly),
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   fmt.Sprintf("Bar interval (%s)", strings.Join(marketdata.SupportedTimespans(), ", ")),
				Value:   string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "data",
			},
		},
		Action: a.downloadAction,
	}
}

func (a *app) downloadAction(ctx context.Context, cmd *cli.Command) error {
	downloadConfig, err := a.downloadConfig(cmd)
	if err != nil {
		return err
	}

	params, err := downloadConfig.ToDownloadParams()
	if err != nil {
		return err
	}

	client, err := marketdata.NewClient(downloadConfig.ToClientConfig(cmd.String("data")), newDownloadProgress(), a.log.Named("marketdata"))
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	if err != nil {
		return err
	}

	a.log.Info("Download completed", zap.String("path", path))
	fmt.Fprintln(output(cmd), path)

	return nil
}

// downloadConfig reads the JSON configuration file when given and builds one from the flags otherwise.
func (a *app) downloadConfig(cmd *cli.Command) (marketdata.DownloadConfig, error) {
	providerName := cmd.String("provider")

	if path := cmd.String("json-config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		return marketdata.ParseDownloadConfig(providerName, data)
	}

	base := marketdata.BaseDownloadConfig{
		Ticker:    cmd.String("ticker"),
		StartDate: cmd.String("start"),
		EndDate:   cmd.String("end"),
		Interval:  cmd.String("interval"),
	}

	var downloadConfig marketdata.DownloadConfig

	switch marketdata.ProviderType(providerName) {
	case marketdata.ProviderPolygon:
		downloadConfig = &marketdata.PolygonDownloadConfig{BaseDownloadConfig: base, ApiKey: a.config.Data.PolygonAPIKey}
	case marketdata.ProviderBinance:
		downloadConfig = &marketdata.BinanceDownloadConfig{BaseDownloadConfig: base}
	default:
		// reports the unsupported provider with its error code
		_, err := marketdata.GetProviderInfo(providerName)

		return nil, err
	}

	if err := downloadConfig.Validate(); err != nil {
		return nil, err
	}

	return downloadConfig, nil
}

func newDownloadProgress() func(current float64, total float64, message string) {
	var bar *progressbar.ProgressBar

	return func(current float64, total float64, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(int(total),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription(message),
				progressbar.OptionShowCount(),
			)
		}

		_ = bar.Set(int(current))
	}
}
