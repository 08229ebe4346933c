package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AgeBandedRate maps an attained- or issue-age band to an annual rate per
// $1,000 of face amount. Bands are inclusive of MaxAge; the last band in a
// table should use an open ceiling (e.g. 999).
type AgeBandedRate struct {
	MaxAge          int             `yaml:"max_age" json:"max_age"`
	RatePerThousand decimal.Decimal `yaml:"rate_per_thousand" json:"rate_per_thousand"`
}

// SizeBenchmark maps an age band to the multiple of annual income an
// investable portfolio is expected to have reached.
type SizeBenchmark struct {
	MaxAge         int             `yaml:"max_age" json:"max_age"`
	IncomeMultiple decimal.Decimal `yaml:"income_multiple" json:"income_multiple"`
}

// PolicyConfig carries every tuning constant the engine uses: needs-analysis
// factors, scoring weights and benchmarks, and the illustration tables for
// the cash-value projection. Instances are immutable once validated; the
// engine never mutates them at runtime.
type PolicyConfig struct {
	// Needs analysis.
	RetirementAgeProxy     int             `yaml:"retirement_age_proxy" json:"retirement_age_proxy"`
	IncomeReplacementRatio decimal.Decimal `yaml:"income_replacement_ratio" json:"income_replacement_ratio"`
	MinReplacementYears    int             `yaml:"min_replacement_years" json:"min_replacement_years"`
	MaxReplacementYears    int             `yaml:"max_replacement_years" json:"max_replacement_years"`

	// Portfolio health scoring. DiversityPoints is indexed by the number
	// of asset classes holding at least SignificantShareFloor of the
	// total; counts past the end of the slice earn the last entry.
	DiversityPoints       []int           `yaml:"diversity_points" json:"diversity_points"`
	SignificantShareFloor decimal.Decimal `yaml:"significant_share_floor" json:"significant_share_floor"`
	SizeAdequacyMax       int             `yaml:"size_adequacy_max" json:"size_adequacy_max"`
	SizeBenchmarks        []SizeBenchmark `yaml:"size_benchmarks" json:"size_benchmarks"`
	LiquidityMax          int             `yaml:"liquidity_max" json:"liquidity_max"`
	LiquidityTargetMonths int             `yaml:"liquidity_target_months" json:"liquidity_target_months"`
	InsuranceCoverageMax  int             `yaml:"insurance_coverage_max" json:"insurance_coverage_max"`

	// Real-estate concentration penalty: no penalty at or below the
	// threshold share, maximum penalty at or above the ceiling share.
	ConcentrationPenaltyMax int             `yaml:"concentration_penalty_max" json:"concentration_penalty_max"`
	ConcentrationThreshold  decimal.Decimal `yaml:"concentration_threshold" json:"concentration_threshold"`
	ConcentrationCeiling    decimal.Decimal `yaml:"concentration_ceiling" json:"concentration_ceiling"`

	// Cash-value projection.
	MinCreditingRate        decimal.Decimal `yaml:"min_crediting_rate" json:"min_crediting_rate"`
	MaxCreditingRate        decimal.Decimal `yaml:"max_crediting_rate" json:"max_crediting_rate"`
	DefaultCreditingRate    decimal.Decimal `yaml:"default_crediting_rate" json:"default_crediting_rate"`
	MinHorizonYears         int             `yaml:"min_horizon_years" json:"min_horizon_years"`
	MaxHorizonYears         int             `yaml:"max_horizon_years" json:"max_horizon_years"`
	FirstYearAllocationRate decimal.Decimal `yaml:"first_year_allocation_rate" json:"first_year_allocation_rate"`
	RenewalAllocationRate   decimal.Decimal `yaml:"renewal_allocation_rate" json:"renewal_allocation_rate"`

	// Cost-of-insurance charges by attained age. Assumed illustrative
	// values, monotonically increasing with age; not an industry table.
	COIBands []AgeBandedRate `yaml:"coi_bands" json:"coi_bands"`

	// Surrender charges start at one annual premium and taper linearly
	// to zero over SurrenderChargeYears.
	SurrenderChargeYears int `yaml:"surrender_charge_years" json:"surrender_charge_years"`

	// 7-pay MEC premium limits by issue age, per $1,000 of face.
	// Assumed illustrative values.
	SevenPayBands []AgeBandedRate `yaml:"seven_pay_bands" json:"seven_pay_bands"`
	SevenPayYears int             `yaml:"seven_pay_years" json:"seven_pay_years"`

	// Premium estimate used to illustrate the IUL track, per $1,000 of
	// face by issue age. Assumed illustrative values.
	PremiumEstimateBands []AgeBandedRate `yaml:"premium_estimate_bands" json:"premium_estimate_bands"`

	// Recommendation.
	FaceRoundingIncrement decimal.Decimal `yaml:"face_rounding_increment" json:"face_rounding_increment"`
	MinTermYears          int             `yaml:"min_term_years" json:"min_term_years"`
	MaxTermYears          int             `yaml:"max_term_years" json:"max_term_years"`
	IULMaxIssueAge        int             `yaml:"iul_max_issue_age" json:"iul_max_issue_age"`
	IULIllustrationYears  int             `yaml:"iul_illustration_years" json:"iul_illustration_years"`
}

// DefaultPolicyConfig returns the standard engine tuning. The COI, 7-pay,
// and premium-estimate tables are documented assumptions chosen for the
// required qualitative behavior (monotonic increase with age), not sourced
// from a published actuarial table.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		RetirementAgeProxy:     65,
		IncomeReplacementRatio: decimal.NewFromFloat(0.75),
		MinReplacementYears:    5,
		MaxReplacementYears:    30,

		// 1 significant class scores 0; gains diminish toward the
		// 4-class maximum.
		DiversityPoints:       []int{0, 0, 15, 24, 30},
		SignificantShareFloor: decimal.NewFromFloat(0.05),
		SizeAdequacyMax:       20,
		SizeBenchmarks: []SizeBenchmark{
			{MaxAge: 29, IncomeMultiple: decimal.NewFromFloat(0.5)},
			{MaxAge: 39, IncomeMultiple: decimal.NewFromFloat(1.5)},
			{MaxAge: 49, IncomeMultiple: decimal.NewFromFloat(3.0)},
			{MaxAge: 59, IncomeMultiple: decimal.NewFromFloat(5.0)},
			{MaxAge: 999, IncomeMultiple: decimal.NewFromFloat(7.0)},
		},
		LiquidityMax:          20,
		LiquidityTargetMonths: 6,
		InsuranceCoverageMax:  15,

		ConcentrationPenaltyMax: 15,
		ConcentrationThreshold:  decimal.NewFromFloat(0.40),
		ConcentrationCeiling:    decimal.NewFromFloat(0.80),

		MinCreditingRate:        decimal.NewFromFloat(0.06),
		MaxCreditingRate:        decimal.NewFromFloat(0.08),
		DefaultCreditingRate:    decimal.NewFromFloat(0.065),
		MinHorizonYears:         20,
		MaxHorizonYears:         40,
		FirstYearAllocationRate: decimal.NewFromFloat(0.85),
		RenewalAllocationRate:   decimal.NewFromFloat(0.95),

		COIBands: []AgeBandedRate{
			{MaxAge: 29, RatePerThousand: decimal.NewFromFloat(0.90)},
			{MaxAge: 39, RatePerThousand: decimal.NewFromFloat(1.10)},
			{MaxAge: 49, RatePerThousand: decimal.NewFromFloat(1.80)},
			{MaxAge: 59, RatePerThousand: decimal.NewFromFloat(3.60)},
			{MaxAge: 69, RatePerThousand: decimal.NewFromFloat(7.50)},
			{MaxAge: 79, RatePerThousand: decimal.NewFromFloat(16.00)},
			{MaxAge: 999, RatePerThousand: decimal.NewFromFloat(32.00)},
		},

		SurrenderChargeYears: 10,

		SevenPayBands: []AgeBandedRate{
			{MaxAge: 34, RatePerThousand: decimal.NewFromFloat(18.0)},
			{MaxAge: 44, RatePerThousand: decimal.NewFromFloat(25.0)},
			{MaxAge: 54, RatePerThousand: decimal.NewFromFloat(35.0)},
			{MaxAge: 64, RatePerThousand: decimal.NewFromFloat(50.0)},
			{MaxAge: 999, RatePerThousand: decimal.NewFromFloat(70.0)},
		},
		SevenPayYears: 7,

		PremiumEstimateBands: []AgeBandedRate{
			{MaxAge: 34, RatePerThousand: decimal.NewFromFloat(8.0)},
			{MaxAge: 44, RatePerThousand: decimal.NewFromFloat(12.0)},
			{MaxAge: 54, RatePerThousand: decimal.NewFromFloat(18.0)},
			{MaxAge: 999, RatePerThousand: decimal.NewFromFloat(28.0)},
		},

		FaceRoundingIncrement: decimal.NewFromInt(10000),
		MinTermYears:          10,
		MaxTermYears:          30,
		IULMaxIssueAge:        55,
		IULIllustrationYears:  20,
	}
}

// Validate checks the configuration for internal consistency. It is called
// once when an engine is constructed; a valid config never changes shape at
// runtime.
func (pc PolicyConfig) Validate() error {
	if pc.RetirementAgeProxy < 50 || pc.RetirementAgeProxy > 80 {
		return fmt.Errorf("retirement age proxy must be between 50 and 80, got %d", pc.RetirementAgeProxy)
	}
	if pc.IncomeReplacementRatio.LessThanOrEqual(decimal.Zero) || pc.IncomeReplacementRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("income replacement ratio must be in (0, 1], got %s", pc.IncomeReplacementRatio)
	}
	if pc.MinReplacementYears <= 0 || pc.MinReplacementYears > pc.MaxReplacementYears {
		return fmt.Errorf("replacement years bounds invalid: min %d, max %d", pc.MinReplacementYears, pc.MaxReplacementYears)
	}
	if len(pc.DiversityPoints) < 2 {
		return fmt.Errorf("diversity points table needs at least two entries")
	}
	if pc.SignificantShareFloor.LessThanOrEqual(decimal.Zero) || pc.SignificantShareFloor.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("significant share floor must be in (0, 1), got %s", pc.SignificantShareFloor)
	}
	if err := validateAgeBands("size benchmarks", len(pc.SizeBenchmarks)); err != nil {
		return err
	}
	if pc.LiquidityTargetMonths <= 0 {
		return fmt.Errorf("liquidity target months must be positive, got %d", pc.LiquidityTargetMonths)
	}
	if pc.ConcentrationCeiling.LessThanOrEqual(pc.ConcentrationThreshold) {
		return fmt.Errorf("concentration ceiling %s must exceed threshold %s", pc.ConcentrationCeiling, pc.ConcentrationThreshold)
	}
	if pc.MinCreditingRate.GreaterThan(pc.MaxCreditingRate) {
		return fmt.Errorf("crediting rate bounds inverted: min %s, max %s", pc.MinCreditingRate, pc.MaxCreditingRate)
	}
	if pc.DefaultCreditingRate.LessThan(pc.MinCreditingRate) || pc.DefaultCreditingRate.GreaterThan(pc.MaxCreditingRate) {
		return fmt.Errorf("default crediting rate %s outside supported bounds [%s, %s]", pc.DefaultCreditingRate, pc.MinCreditingRate, pc.MaxCreditingRate)
	}
	if pc.MinHorizonYears <= 0 || pc.MinHorizonYears > pc.MaxHorizonYears {
		return fmt.Errorf("horizon bounds invalid: min %d, max %d", pc.MinHorizonYears, pc.MaxHorizonYears)
	}
	if err := validateRateTable("coi bands", pc.COIBands, true); err != nil {
		return err
	}
	if err := validateRateTable("seven pay bands", pc.SevenPayBands, true); err != nil {
		return err
	}
	if err := validateRateTable("premium estimate bands", pc.PremiumEstimateBands, true); err != nil {
		return err
	}
	if pc.SurrenderChargeYears <= 0 {
		return fmt.Errorf("surrender charge years must be positive, got %d", pc.SurrenderChargeYears)
	}
	if pc.SevenPayYears <= 0 {
		return fmt.Errorf("seven pay years must be positive, got %d", pc.SevenPayYears)
	}
	if !pc.FaceRoundingIncrement.IsPositive() {
		return fmt.Errorf("face rounding increment must be positive, got %s", pc.FaceRoundingIncrement)
	}
	if pc.MinTermYears <= 0 || pc.MinTermYears > pc.MaxTermYears {
		return fmt.Errorf("term duration bounds invalid: min %d, max %d", pc.MinTermYears, pc.MaxTermYears)
	}
	if pc.IULIllustrationYears < pc.MinHorizonYears || pc.IULIllustrationYears > pc.MaxHorizonYears {
		return fmt.Errorf("iul illustration years %d outside horizon bounds [%d, %d]", pc.IULIllustrationYears, pc.MinHorizonYears, pc.MaxHorizonYears)
	}
	return nil
}

func validateAgeBands(name string, n int) error {
	if n == 0 {
		return fmt.Errorf("%s table is empty", name)
	}
	return nil
}

// validateRateTable checks a banded table is non-empty, age-ordered, and
// (when required) has monotonically non-decreasing rates.
func validateRateTable(name string, bands []AgeBandedRate, monotonic bool) error {
	if len(bands) == 0 {
		return fmt.Errorf("%s table is empty", name)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].MaxAge <= bands[i-1].MaxAge {
			return fmt.Errorf("%s table not ordered by age at entry %d", name, i)
		}
		if monotonic && bands[i].RatePerThousand.LessThan(bands[i-1].RatePerThousand) {
			return fmt.Errorf("%s table rates decrease at entry %d", name, i)
		}
	}
	return nil
}

// rateForAge resolves a banded rate table for an age. Ages beyond the last
// band use the last band's rate.
func rateForAge(bands []AgeBandedRate, age int) decimal.Decimal {
	for _, band := range bands {
		if age <= band.MaxAge {
			return band.RatePerThousand
		}
	}
	return bands[len(bands)-1].RatePerThousand
}

// sizeBenchmarkMultiple resolves the income multiple expected at an age.
func (pc PolicyConfig) sizeBenchmarkMultiple(age int) decimal.Decimal {
	for _, band := range pc.SizeBenchmarks {
		if age <= band.MaxAge {
			return band.IncomeMultiple
		}
	}
	return pc.SizeBenchmarks[len(pc.SizeBenchmarks)-1].IncomeMultiple
}

// diversityPointsFor returns the diversity points for a significant-class
// count, saturating at the table's last entry.
func (pc PolicyConfig) diversityPointsFor(classes int) int {
	if classes < 0 {
		classes = 0
	}
	if classes >= len(pc.DiversityPoints) {
		return pc.DiversityPoints[len(pc.DiversityPoints)-1]
	}
	return pc.DiversityPoints[classes]
}
