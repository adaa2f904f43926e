package engine

import (
	"errors"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackWithProgress() {
	var progress []int
	callback := OnProcessDataCallback(func(current int, total int) error {
		progress = append(progress, current)
		return nil
	})

	for i := 1; i <= 5; i++ {
		err := callback(i, 5)
		suite.NoError(err)
	}

	suite.Equal([]int{1, 2, 3, 4, 5}, progress)
}

func (suite *EngineTestSuite) TestCallbackCanAbort() {
	abort := errors.New("stop")
	callback := OnStrategyStartCallback(func(_ int, name types.StrategyName, _ int) error {
		if name == types.StrategyQuantumFluctuation {
			return abort
		}

		return nil
	})

	suite.NoError(callback(0, types.StrategyMomentumBreakout, 2))
	suite.ErrorIs(callback(1, types.StrategyQuantumFluctuation, 2), abort)
}

func (suite *EngineTestSuite) TestNilCallbacksByDefault() {
	callbacks := LifecycleCallbacks{}

	suite.Nil(callbacks.OnBacktestStart)
	suite.Nil(callbacks.OnRunEnd)
	suite.Nil(callbacks.OnProcessData)
}
