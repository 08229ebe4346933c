package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifegap/coverage-calculator/internal/domain"
	pkgdecimal "github.com/lifegap/coverage-calculator/pkg/decimal"
)

// RecommendationInput is what the decision table consumes: the needs gap,
// the optional portfolio health score, and the applicant's preference flags.
type RecommendationInput struct {
	Age                  int
	NetGap               decimal.Decimal
	WantsCashValueGrowth bool
	PriceSensitivity     domain.PriceSensitivity
	Health               *domain.HealthScore
}

// decisionRule is one entry of the ordered decision table: a pure predicate
// plus the action taken when it matches. Rules are evaluated top to bottom
// and the first match wins, which keeps the branching auditable rule by rule.
type decisionRule struct {
	Tag     string
	Matches func(in RecommendationInput) bool
	Apply   func(in RecommendationInput) domain.ProductRecommendation
}

// RecommendationEngine chooses Term vs. IUL and a duration. It is a pure
// decision table with no failure modes: any combination of valid inputs
// maps to a recommendation.
type RecommendationEngine struct {
	Config PolicyConfig
	Logger Logger
	rules  []decisionRule
}

// NewRecommendationEngine creates an engine carrying the standard rule set.
func NewRecommendationEngine(cfg PolicyConfig) *RecommendationEngine {
	return &RecommendationEngine{
		Config: cfg,
		Logger: NopLogger{},
		rules:  standardRules(cfg),
	}
}

// Recommend evaluates the decision table in order and returns the first
// matching rule's recommendation, tagged with the conditions that fired.
func (re *RecommendationEngine) Recommend(in RecommendationInput) domain.ProductRecommendation {
	for _, rule := range re.rules {
		if !rule.Matches(in) {
			continue
		}
		rec := rule.Apply(in)
		if in.Health != nil && in.Health.Score < 50 {
			rec.RationaleTags = append(rec.RationaleTags, "portfolio-health-below-average")
		}
		re.Logger.Debugf("recommendation: rule=%s track=%s face=%s duration=%d",
			rule.Tag, rec.Track, rec.FaceAmount.StringFixed(2), rec.DurationYears)
		return rec
	}

	// Unreachable: the last standard rule always matches.
	return domain.ProductRecommendation{}
}

// Rules returns the tags of the decision table in evaluation order.
func (re *RecommendationEngine) Rules() []string {
	tags := make([]string, len(re.rules))
	for i, rule := range re.rules {
		tags[i] = rule.Tag
	}
	return tags
}

func standardRules(cfg PolicyConfig) []decisionRule {
	return []decisionRule{
		{
			Tag: "price-sensitive-term",
			Matches: func(in RecommendationInput) bool {
				return in.PriceSensitivity == domain.PriceSensitivityHigh && !in.WantsCashValueGrowth
			},
			Apply: func(in RecommendationInput) domain.ProductRecommendation {
				return domain.ProductRecommendation{
					Track:         domain.TrackTerm,
					FaceAmount:    roundFace(cfg, in.NetGap),
					DurationYears: termDuration(cfg, in.Age),
					RationaleTags: []string{"price-sensitivity-high", "no-cash-value-preference"},
				}
			},
		},
		{
			Tag: "cash-value-iul",
			Matches: func(in RecommendationInput) bool {
				return in.WantsCashValueGrowth && in.Age <= cfg.IULMaxIssueAge
			},
			Apply: func(in RecommendationInput) domain.ProductRecommendation {
				face := roundFace(cfg, in.NetGap)
				return domain.ProductRecommendation{
					Track:                  domain.TrackIUL,
					FaceAmount:             face,
					DurationYears:          cfg.IULIllustrationYears,
					EstimatedAnnualPremium: estimatePremium(cfg, face, in.Age),
					RationaleTags:          []string{"cash-value-preference", "within-iul-issue-age"},
				}
			},
		},
		{
			Tag: "coverage-sufficient",
			Matches: func(in RecommendationInput) bool {
				return in.NetGap.IsZero()
			},
			Apply: func(in RecommendationInput) domain.ProductRecommendation {
				return domain.ProductRecommendation{
					Track:         domain.TrackTerm,
					FaceAmount:    decimal.Zero,
					DurationYears: 0,
					RationaleTags: []string{"existing-coverage-sufficient"},
				}
			},
		},
		{
			Tag: "default-term",
			Matches: func(in RecommendationInput) bool {
				return true
			},
			Apply: func(in RecommendationInput) domain.ProductRecommendation {
				return domain.ProductRecommendation{
					Track:         domain.TrackTerm,
					FaceAmount:    roundFace(cfg, in.NetGap),
					DurationYears: termDuration(cfg, in.Age),
					RationaleTags: []string{"default-term"},
				}
			},
		},
	}
}

// termDuration covers to the retirement-age proxy, capped at the maximum
// term and floored at the minimum so older applicants still get a real term.
func termDuration(cfg PolicyConfig, age int) int {
	years := cfg.RetirementAgeProxy - age
	if years > cfg.MaxTermYears {
		years = cfg.MaxTermYears
	}
	if years < cfg.MinTermYears {
		years = cfg.MinTermYears
	}
	return years
}

// roundFace rounds the net gap up to the configured increment ($10,000 by
// default). A zero gap stays zero.
func roundFace(cfg PolicyConfig, gap decimal.Decimal) decimal.Decimal {
	if !gap.IsPositive() {
		return decimal.Zero
	}
	face := pkgdecimal.NewMoneyFromDecimal(gap).
		RoundUpToNearest(pkgdecimal.NewMoneyFromDecimal(cfg.FaceRoundingIncrement))
	return face.Decimal
}

// estimatePremium prices the illustrative IUL premium from the age-banded
// estimate table, per $1,000 of face.
func estimatePremium(cfg PolicyConfig, face decimal.Decimal, age int) decimal.Decimal {
	return face.Div(decimal.NewFromInt(1000)).Mul(rateForAge(cfg.PremiumEstimateBands, age))
}
