package calculation

import (
	"fmt"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// Engine orchestrates the full coverage evaluation: needs analysis,
// optional portfolio health scoring, the product recommendation, and the
// cash-value illustration when the IUL track is chosen.
//
// The engine is stateless between calls. Every value it produces belongs to
// a single evaluation; concurrent evaluations need no coordination.
type Engine struct {
	Config      PolicyConfig
	Needs       *NeedsCalculator
	Scorer      *PortfolioHealthScorer
	Recommender *RecommendationEngine
	Projector   *CashValueProjector
	Logger      Logger
}

// NewEngine creates an engine with the default policy configuration.
func NewEngine() *Engine {
	engine, err := NewEngineWithConfig(DefaultPolicyConfig())
	if err != nil {
		// The default config is covered by tests; failing here is a
		// programming error, not an input error.
		panic(fmt.Sprintf("default policy config invalid: %v", err))
	}
	return engine
}

// NewEngineWithConfig creates an engine from a custom policy configuration,
// validating it once up front.
func NewEngineWithConfig(cfg PolicyConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("policy config validation failed: %w", err)
	}
	return &Engine{
		Config:      cfg,
		Needs:       NewNeedsCalculator(cfg),
		Scorer:      NewPortfolioHealthScorer(cfg),
		Recommender: NewRecommendationEngine(cfg),
		Projector:   NewCashValueProjector(cfg),
		Logger:      NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine and its components. A nil logger
// restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.Needs.Logger = l
	e.Scorer.Logger = l
	e.Recommender.Logger = l
	e.Projector.Logger = l
}

// Evaluate runs the pipeline for one assessment. The snapshot is optional;
// without it no health score is produced. The pipeline fails fast: a
// ValidationError from any stage stops the evaluation with no partial
// result.
func (e *Engine) Evaluate(input *domain.AssessmentInput, snapshot *domain.PortfolioSnapshot) (*domain.EvaluationResult, error) {
	if input == nil {
		return nil, NewValidationError("assessment", "input is required")
	}

	needs, err := e.Needs.Calculate(input)
	if err != nil {
		return nil, fmt.Errorf("needs analysis failed: %w", err)
	}

	var health *domain.HealthScore
	if snapshot != nil {
		health, err = e.Scorer.Score(snapshot, ScoringContext{
			Age:             input.Age,
			AnnualIncome:    input.AnnualIncome(),
			MonthlyExpenses: input.MonthlyExpenses,
			LiquidSavings:   input.LiquidSavings,
			NetGap:          needs.NetGap,
		})
		if err != nil {
			return nil, fmt.Errorf("portfolio scoring failed: %w", err)
		}
	}

	recommendation := e.Recommender.Recommend(RecommendationInput{
		Age:                  input.Age,
		NetGap:               needs.NetGap,
		WantsCashValueGrowth: input.WantsCashValueGrowth,
		PriceSensitivity:     input.PriceSensitivity,
		Health:               health,
	})

	result := &domain.EvaluationResult{
		Needs:          *needs,
		Health:         health,
		Recommendation: recommendation,
	}

	// The IUL track is illustrated only when there is a face amount to
	// project; a zero gap leaves nothing to insure.
	if recommendation.Track == domain.TrackIUL && recommendation.FaceAmount.IsPositive() {
		projection, err := e.Projector.Project(PolicyParameters{
			FaceAmount:    recommendation.FaceAmount,
			AnnualPremium: recommendation.EstimatedAnnualPremium,
			CreditingRate: e.Config.DefaultCreditingRate,
			HorizonYears:  recommendation.DurationYears,
			CurrentAge:    input.Age,
		})
		if err != nil {
			return nil, fmt.Errorf("cash-value projection failed: %w", err)
		}
		result.Projection = projection
	}

	return result, nil
}
