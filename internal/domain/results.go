package domain

import (
	"github.com/shopspring/decimal"
)

// CoverageNeedsResult holds the needs analysis for one assessment.
// Immutable once computed.
type CoverageNeedsResult struct {
	IncomeReplacement decimal.Decimal `json:"income_replacement"`
	DebtCoverage      decimal.Decimal `json:"debt_coverage"`
	EducationFunding  decimal.Decimal `json:"education_funding"`
	FinalExpenses     decimal.Decimal `json:"final_expenses"`
	LegacyAmount      decimal.Decimal `json:"legacy_amount"`

	GrossNeed         decimal.Decimal `json:"gross_need"`
	OffsettableAssets decimal.Decimal `json:"offsettable_assets"`

	// NetGap is GrossNeed less OffsettableAssets, never negative.
	NetGap decimal.Decimal `json:"net_gap"`

	// ReplacementYears is how many years of income the analysis replaces.
	ReplacementYears int `json:"replacement_years"`
}

// ScoreCategory identifies one dimension of the portfolio health score.
type ScoreCategory string

const (
	CategoryDiversification ScoreCategory = "diversification"
	CategorySizeAdequacy    ScoreCategory = "size_adequacy"
	CategoryLiquidity       ScoreCategory = "liquidity"
	CategoryInsurance       ScoreCategory = "insurance_coverage"

	// CategoryConcentration is a penalty, recorded as a negative entry
	// in the breakdown.
	CategoryConcentration ScoreCategory = "real_estate_concentration"
)

// HealthScore grades an existing portfolio 0-100. Produced fresh per
// evaluation and never mutated.
type HealthScore struct {
	Score     int                   `json:"score"`
	Breakdown map[ScoreCategory]int `json:"breakdown"`
	Concerns  []string              `json:"concerns"`
}

// PolicyYear is one year of a cash-value projection.
type PolicyYear struct {
	Year           int             `json:"year"`
	AttainedAge    int             `json:"attained_age"`
	PremiumPaid    decimal.Decimal `json:"premium_paid"`
	COICharge      decimal.Decimal `json:"coi_charge"`
	CreditedGrowth decimal.Decimal `json:"credited_growth"`
	CashValue      decimal.Decimal `json:"cash_value"`
	SurrenderValue decimal.Decimal `json:"surrender_value"`
}

// CashValueProjection is the full year-by-year trajectory of a permanent
// policy, plus summary figures. Regenerable deterministically from the same
// inputs.
type CashValueProjection struct {
	FaceAmount    decimal.Decimal `json:"face_amount"`
	AnnualPremium decimal.Decimal `json:"annual_premium"`
	CreditingRate decimal.Decimal `json:"crediting_rate"`
	HorizonYears  int             `json:"horizon_years"`

	Years []PolicyYear `json:"years"`

	// MECYear is the first year cumulative premiums breached the 7-pay
	// limit, zero when the policy never tested as a MEC. Informational
	// only; it does not alter the projection math.
	MECRisk bool `json:"mec_risk"`
	MECYear int  `json:"mec_year,omitempty"`

	FinalCashValue decimal.Decimal `json:"final_cash_value"`
	TotalPremiums  decimal.Decimal `json:"total_premiums"`

	// BreakEvenYear is the first year cash value covers cumulative
	// premiums, zero when it never does within the horizon.
	BreakEvenYear int `json:"break_even_year,omitempty"`
}

// ProductTrack is the recommended product family.
type ProductTrack string

const (
	TrackTerm ProductTrack = "term"
	TrackIUL  ProductTrack = "iul"
)

// ProductRecommendation is the engine's product decision for one assessment.
type ProductRecommendation struct {
	Track ProductTrack `json:"track"`

	// FaceAmount is the net gap rounded up to the nearest $10,000;
	// zero when existing coverage is sufficient.
	FaceAmount    decimal.Decimal `json:"face_amount"`
	DurationYears int             `json:"duration_years"`

	// EstimatedAnnualPremium is set for the IUL track, where a premium is
	// needed to illustrate cash-value growth.
	EstimatedAnnualPremium decimal.Decimal `json:"estimated_annual_premium"`

	// RationaleTags name the decision rules and preference/age conditions
	// that fired, in evaluation order.
	RationaleTags []string `json:"rationale_tags"`
}

// EvaluationResult is everything one evaluate call produces. Health is nil
// when no portfolio snapshot was supplied; Projection is nil unless the IUL
// track was recommended with a positive face amount.
type EvaluationResult struct {
	Needs          CoverageNeedsResult   `json:"needs"`
	Health         *HealthScore          `json:"health,omitempty"`
	Recommendation ProductRecommendation `json:"recommendation"`
	Projection     *CashValueProjection  `json:"projection,omitempty"`
}
