package calculation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

func evaluationInput() *domain.AssessmentInput {
	return &domain.AssessmentInput{
		Age:              40,
		MaritalStatus:    domain.MaritalMarried,
		Dependents:       2,
		MonthlyIncome:    decimal.NewFromInt(6000),
		MonthlyExpenses:  decimal.NewFromInt(4500),
		MortgageBalance:  decimal.NewFromInt(200000),
		LiquidSavings:    decimal.NewFromInt(40000),
		PriceSensitivity: domain.PriceSensitivityMedium,
	}
}

func evaluationSnapshot() *domain.PortfolioSnapshot {
	return &domain.PortfolioSnapshot{
		Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetStocks: decimal.NewFromInt(60000),
			domain.AssetBonds:  decimal.NewFromInt(30000),
			domain.AssetCash:   decimal.NewFromInt(10000),
		},
	}
}

func TestEvaluateWithoutSnapshot(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate(evaluationInput(), nil)
	require.NoError(t, err)

	assert.Nil(t, result.Health)
	assert.True(t, result.Needs.NetGap.IsPositive())
	assert.Equal(t, domain.TrackTerm, result.Recommendation.Track)
	assert.Nil(t, result.Projection)
}

func TestEvaluateWithSnapshotScoresPortfolio(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate(evaluationInput(), evaluationSnapshot())
	require.NoError(t, err)

	require.NotNil(t, result.Health)
	assert.Greater(t, result.Health.Score, 0)
	assert.NotEmpty(t, result.Health.Breakdown)
}

func TestEvaluateSufficientCoverage(t *testing.T) {
	// Assets fully offset the gross need, so the engine recommends
	// keeping the existing arrangement.
	engine := NewEngine()

	input := evaluationInput()
	input.MonthlyIncome = decimal.NewFromInt(3000)
	input.MortgageBalance = decimal.Zero
	input.LiquidSavings = decimal.NewFromInt(700000)

	result, err := engine.Evaluate(input, nil)
	require.NoError(t, err)

	assert.True(t, result.Needs.NetGap.IsZero())
	assert.True(t, result.Recommendation.FaceAmount.IsZero())
	assert.Contains(t, result.Recommendation.RationaleTags, "existing-coverage-sufficient")
	assert.Nil(t, result.Projection)
}

func TestEvaluateIULTrackAttachesProjection(t *testing.T) {
	engine := NewEngine()

	input := evaluationInput()
	input.WantsCashValueGrowth = true

	result, err := engine.Evaluate(input, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TrackIUL, result.Recommendation.Track)
	require.NotNil(t, result.Projection)
	assert.Len(t, result.Projection.Years, result.Recommendation.DurationYears)
	assert.True(t, result.Projection.FaceAmount.Equal(result.Recommendation.FaceAmount))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	// Repeated evaluations of identical inputs serialize byte-for-byte
	// identically.
	engine := NewEngine()

	first, err := engine.Evaluate(evaluationInput(), evaluationSnapshot())
	require.NoError(t, err)
	second, err := engine.Evaluate(evaluationInput(), evaluationSnapshot())
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestEvaluateFailsFastOnInvalidInput(t *testing.T) {
	engine := NewEngine()

	t.Run("nil input", func(t *testing.T) {
		result, err := engine.Evaluate(nil, nil)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, IsValidationError(err))
	})

	t.Run("invalid assessment", func(t *testing.T) {
		input := evaluationInput()
		input.Age = 10
		result, err := engine.Evaluate(input, nil)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, IsValidationError(err))
	})

	t.Run("invalid snapshot", func(t *testing.T) {
		snapshot := &domain.PortfolioSnapshot{
			Holdings: map[domain.AssetClass]decimal.Decimal{
				domain.AssetStocks: decimal.NewFromInt(-1),
			},
		}
		result, err := engine.Evaluate(evaluationInput(), snapshot)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, IsValidationError(err))
	})
}

func TestNewEngineWithConfigRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.MinCreditingRate = decimal.NewFromFloat(0.10)

	_, err := NewEngineWithConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policy config validation failed")
}

func TestSetLoggerPropagates(t *testing.T) {
	engine := NewEngine()

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
	assert.IsType(t, NopLogger{}, engine.Needs.Logger)
	assert.IsType(t, NopLogger{}, engine.Projector.Logger)
}
