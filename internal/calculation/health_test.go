package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

func scoringContext() ScoringContext {
	return ScoringContext{
		Age:             38,
		AnnualIncome:    decimal.NewFromInt(60000),
		MonthlyExpenses: decimal.NewFromInt(5000),
		LiquidSavings:   decimal.NewFromInt(30000),
		NetGap:          decimal.Zero,
	}
}

func TestScoreWellBalancedPortfolio(t *testing.T) {
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshot := &domain.PortfolioSnapshot{
		Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetStocks:      decimal.NewFromInt(40000),
			domain.AssetBonds:       decimal.NewFromInt(25000),
			domain.AssetCash:        decimal.NewFromInt(20000),
			domain.AssetAlternative: decimal.NewFromInt(15000),
		},
	}

	score, err := scorer.Score(snapshot, scoringContext())
	require.NoError(t, err)

	// Four significant classes, assets above the age-38 benchmark
	// (1.5x income = 90000), six months of expenses liquid, no gap to
	// cover: every positive category maxes out at 30+20+20+15.
	assert.Equal(t, 85, score.Score)
	assert.Equal(t, 30, score.Breakdown[domain.CategoryDiversification])
	assert.Equal(t, 20, score.Breakdown[domain.CategorySizeAdequacy])
	assert.Equal(t, 20, score.Breakdown[domain.CategoryLiquidity])
	assert.Equal(t, 15, score.Breakdown[domain.CategoryInsurance])
	assert.NotContains(t, score.Breakdown, domain.CategoryConcentration)
	assert.Empty(t, score.Concerns)
}

func TestScoreSingleAssetClassPortfolio(t *testing.T) {
	// 100% cash scores zero on diversity and flags the concern.
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshot := &domain.PortfolioSnapshot{
		Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetCash: decimal.NewFromInt(50000),
		},
	}

	score, err := scorer.Score(snapshot, scoringContext())
	require.NoError(t, err)
	assert.Equal(t, 0, score.Breakdown[domain.CategoryDiversification])
	assert.Contains(t, score.Concerns, "limited asset-class diversification")
}

func TestScoreEmptyPortfolio(t *testing.T) {
	// An empty portfolio is a valid state: score 0 with a concern,
	// not an error.
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshot := &domain.PortfolioSnapshot{}

	score, err := scorer.Score(snapshot, scoringContext())
	require.NoError(t, err)
	assert.Equal(t, 0, score.Score)
	assert.Contains(t, score.Concerns, "portfolio holds no investable assets")
}

func TestRealEstateConcentrationPenalty(t *testing.T) {
	tests := []struct {
		name            string
		realEstate      int64
		stocks          int64
		expectPenalty   bool
		expectedPenalty int
	}{
		{
			name:          "share at threshold takes no penalty",
			realEstate:    40000,
			stocks:        60000,
			expectPenalty: false,
		},
		{
			name:            "share above threshold scales with excess",
			realEstate:      60000, // 60% share: excess 0.20 of 0.40 window
			stocks:          40000,
			expectPenalty:   true,
			expectedPenalty: 8,
		},
		{
			name:            "share at ceiling takes the full penalty",
			realEstate:      80000,
			stocks:          20000,
			expectPenalty:   true,
			expectedPenalty: 15,
		},
	}

	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &domain.PortfolioSnapshot{
				Holdings: map[domain.AssetClass]decimal.Decimal{
					domain.AssetRealEstate: decimal.NewFromInt(tt.realEstate),
					domain.AssetStocks:     decimal.NewFromInt(tt.stocks),
				},
			}
			score, err := scorer.Score(snapshot, scoringContext())
			require.NoError(t, err)

			penalty, present := score.Breakdown[domain.CategoryConcentration]
			assert.Equal(t, tt.expectPenalty, present)
			if tt.expectPenalty {
				assert.Equal(t, -tt.expectedPenalty, penalty)
				assert.Contains(t, score.Concerns, "real-estate concentration")
			}
		})
	}
}

func TestInsuranceCoverageScaling(t *testing.T) {
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshot := &domain.PortfolioSnapshot{
		Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetStocks: decimal.NewFromInt(50000),
			domain.AssetBonds:  decimal.NewFromInt(50000),
		},
		ExistingInsuranceFace: decimal.NewFromInt(100000),
	}

	ctx := scoringContext()
	ctx.NetGap = decimal.NewFromInt(400000)

	score, err := scorer.Score(snapshot, ctx)
	require.NoError(t, err)

	// Face covers a quarter of the gap: 15 * 0.25 rounds to 4.
	assert.Equal(t, 4, score.Breakdown[domain.CategoryInsurance])
	assert.Contains(t, score.Concerns, "life insurance coverage short of need")

	// Face above the gap caps at the category maximum.
	ctx.NetGap = decimal.NewFromInt(50000)
	score, err = scorer.Score(snapshot, ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, score.Breakdown[domain.CategoryInsurance])
}

func TestLiquidityScaling(t *testing.T) {
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshot := &domain.PortfolioSnapshot{
		Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetStocks: decimal.NewFromInt(100000),
		},
	}

	ctx := scoringContext()
	ctx.LiquidSavings = decimal.NewFromInt(15000) // 3 of 6 target months

	score, err := scorer.Score(snapshot, ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, score.Breakdown[domain.CategoryLiquidity])
}

func TestScoreBounds(t *testing.T) {
	// Across a spread of portfolios the score stays within [0, 100].
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())
	snapshots := []*domain.PortfolioSnapshot{
		{},
		{Holdings: map[domain.AssetClass]decimal.Decimal{domain.AssetRealEstate: decimal.NewFromInt(1000000)}},
		{Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetStocks:      decimal.NewFromInt(250000),
			domain.AssetBonds:       decimal.NewFromInt(250000),
			domain.AssetCash:        decimal.NewFromInt(250000),
			domain.AssetRealEstate:  decimal.NewFromInt(250000),
			domain.AssetAlternative: decimal.NewFromInt(250000),
		}},
	}
	for _, snapshot := range snapshots {
		score, err := scorer.Score(snapshot, scoringContext())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score.Score, 0)
		assert.LessOrEqual(t, score.Score, 100)
	}
}

func TestScoreValidation(t *testing.T) {
	scorer := NewPortfolioHealthScorer(DefaultPolicyConfig())

	t.Run("negative holding", func(t *testing.T) {
		snapshot := &domain.PortfolioSnapshot{
			Holdings: map[domain.AssetClass]decimal.Decimal{
				domain.AssetStocks: decimal.NewFromInt(-100),
			},
		}
		_, err := scorer.Score(snapshot, scoringContext())
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("unknown asset class", func(t *testing.T) {
		snapshot := &domain.PortfolioSnapshot{
			Holdings: map[domain.AssetClass]decimal.Decimal{
				domain.AssetClass("crypto_futures"): decimal.NewFromInt(100),
			},
		}
		_, err := scorer.Score(snapshot, scoringContext())
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("nil snapshot", func(t *testing.T) {
		_, err := scorer.Score(nil, scoringContext())
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}
