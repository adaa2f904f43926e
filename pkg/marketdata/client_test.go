package marketdata

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/mocks"
	apperrors "github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/writer"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClientTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProvider *mocks.MockProvider
	tempDir      string
	start        time.Time
	end          time.Time
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProvider = mocks.NewMockProvider(suite.ctrl)
	suite.tempDir = suite.T().TempDir()
	suite.start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ClientTestSuite) newClient() *Client {
	config := ClientConfig{
		ProviderType: ProviderBinance,
		WriterType:   WriterDuckDB,
		DataPath:     suite.tempDir,
	}

	return newClientWithProvider(config, suite.mockProvider, nil, nil)
}

func (suite *ClientTestSuite) params() DownloadParams {
	return DownloadParams{
		Ticker:     "BTCUSDT",
		StartDate:  suite.start,
		EndDate:    suite.end,
		Multiplier: 1,
		Timespan:   models.Minute,
	}
}

func (suite *ClientTestSuite) TestNewClientValidation() {
	tests := []struct {
		name    string
		config  ClientConfig
		wantErr bool
	}{
		{"binance needs no key", ClientConfig{ProviderType: ProviderBinance, WriterType: WriterDuckDB, DataPath: suite.tempDir}, false},
		{"polygon with key", ClientConfig{ProviderType: ProviderPolygon, WriterType: WriterDuckDB, DataPath: suite.tempDir, PolygonApiKey: "key"}, false},
		{"polygon without key", ClientConfig{ProviderType: ProviderPolygon, WriterType: WriterDuckDB, DataPath: suite.tempDir}, true},
		{"unknown provider", ClientConfig{ProviderType: "kraken", WriterType: WriterDuckDB, DataPath: suite.tempDir}, true},
		{"missing data path", ClientConfig{ProviderType: ProviderBinance, WriterType: WriterDuckDB}, true},
		{"unknown writer", ClientConfig{ProviderType: ProviderBinance, WriterType: "csv", DataPath: suite.tempDir}, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			client, err := NewClient(tc.config, nil, nil)
			if tc.wantErr {
				suite.Error(err)
				suite.True(apperrors.HasCode(err, apperrors.ErrCodeInvalidConfiguration))
				suite.Nil(client)

				return
			}

			suite.NoError(err)
			suite.NotNil(client)
		})
	}
}

func (suite *ClientTestSuite) TestDownloadConfiguresWriterAtExpectedPath() {
	client := suite.newClient()
	expected := filepath.Join(suite.tempDir, "BTCUSDT_2023-01-01_2023-01-31_1_minute.parquet")

	suite.mockProvider.EXPECT().
		ConfigWriter(gomock.Any()).
		Do(func(w writer.MarketDataWriter) {
			suite.Equal(expected, w.GetOutputPath())
		})
	suite.mockProvider.EXPECT().
		Download(gomock.Any(), "BTCUSDT", suite.start, suite.end, 1, models.Minute, gomock.Any()).
		Return(expected, nil)

	path, err := client.Download(context.Background(), suite.params())
	suite.NoError(err)
	suite.Equal(expected, path)
}

func (suite *ClientTestSuite) TestDownloadProviderError() {
	client := suite.newClient()

	suite.mockProvider.EXPECT().ConfigWriter(gomock.Any())
	suite.mockProvider.EXPECT().
		Download(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("rate limited"))

	path, err := client.Download(context.Background(), suite.params())
	suite.Error(err)
	suite.Empty(path)
	suite.Contains(err.Error(), "rate limited")
}

func (suite *ClientTestSuite) TestDownloadInvalidParams() {
	client := suite.newClient()

	params := suite.params()
	params.EndDate = suite.start.AddDate(0, 0, -1)

	_, err := client.Download(context.Background(), params)
	suite.Error(err)
	suite.True(apperrors.HasCode(err, apperrors.ErrCodeInvalidParameter))

	params = suite.params()
	params.Ticker = ""

	_, err = client.Download(context.Background(), params)
	suite.Error(err)
}

func (suite *ClientTestSuite) TestGetPricesDelegates() {
	client := suite.newClient()
	bars := []types.MarketData{{Symbol: "BTCUSDT", Time: suite.start, Close: 42000}}

	suite.mockProvider.EXPECT().GetPrices(gomock.Any(), "BTCUSDT", suite.start, suite.end).Return(bars, nil)

	prices, err := client.GetPrices(context.Background(), "BTCUSDT", suite.start, suite.end)
	suite.NoError(err)
	suite.Equal(bars, prices)
}

func (suite *ClientTestSuite) TestOutputFileName() {
	params := suite.params()
	params.Ticker = "SPY"
	params.Multiplier = 5
	suite.Equal("SPY_2023-01-01_2023-01-31_5_minute.parquet", params.OutputFileName())
}
