package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/mocks"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LibraryMockTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	indicator *mocks.MockIndicator
	library   *Library
}

func TestLibraryMockSuite(t *testing.T) {
	suite.Run(t, new(LibraryMockTestSuite))
}

func (suite *LibraryMockTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.indicator = mocks.NewMockIndicator(suite.ctrl)

	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(types.IndicatorTypeRSI, func() Indicator {
		return suite.indicator
	}))

	suite.library = NewLibrary(registry, nil)
}

func (suite *LibraryMockTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *LibraryMockTestSuite) TestForwardsParams() {
	data := barsWithSpread(1, sequence(1, 30)...)

	suite.indicator.EXPECT().Config(7).Return(nil)
	suite.indicator.EXPECT().Calculate(data).Return(types.IndicatorValue{ValueKey: 42}, nil)

	value := suite.library.Calculate("rsi", data, 7)
	suite.Equal(42.0, value.Get(ValueKey))
}

func (suite *LibraryMockTestSuite) TestCalculationErrorYieldsNeutralValue() {
	suite.indicator.EXPECT().Calculate(gomock.Any()).Return(nil, errors.New(errors.ErrCodeIndicatorCalculation, "boom"))
	suite.indicator.EXPECT().Components().Return([]string{ValueKey}).AnyTimes()

	value, err := suite.library.TryCalculate("RSI", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.Equal(types.IndicatorValue{ValueKey: 0}, value)
}

func (suite *LibraryMockTestSuite) TestConfigErrorSkipsCalculation() {
	suite.indicator.EXPECT().Config("fast").Return(errors.New(errors.ErrCodeInvalidType, "invalid type"))
	suite.indicator.EXPECT().Components().Return([]string{ValueKey}).AnyTimes()

	value := suite.library.Calculate("RSI", nil, "fast")
	suite.Equal(0.0, value.Get(ValueKey))
}
