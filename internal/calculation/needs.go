package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// NeedsCalculator computes the total coverage need and funding gap for an
// assessment. It is a pure function of its input: the same assessment always
// produces the same result.
type NeedsCalculator struct {
	Config PolicyConfig
	Logger Logger
}

// NewNeedsCalculator creates a needs calculator with the given policy config.
func NewNeedsCalculator(cfg PolicyConfig) *NeedsCalculator {
	return &NeedsCalculator{Config: cfg, Logger: NopLogger{}}
}

// Calculate runs the needs analysis. It fails with a ValidationError when
// any input field violates its documented bounds and never fails for
// in-range input.
func (nc *NeedsCalculator) Calculate(input *domain.AssessmentInput) (*domain.CoverageNeedsResult, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	in := input.Normalize()

	replacementYears := nc.replacementYears(in.Age)
	incomeReplacement := in.MonthlyIncome.
		Mul(decimal.NewFromInt(12)).
		Mul(decimal.NewFromInt(int64(replacementYears))).
		Mul(nc.Config.IncomeReplacementRatio)

	debtCoverage := in.MortgageBalance.Add(in.OtherDebt)
	educationFunding := nc.educationFunding(&in)
	finalExpenses := in.FuneralExpense
	legacy := in.LegacyAmount

	grossNeed := incomeReplacement.
		Add(debtCoverage).
		Add(educationFunding).
		Add(finalExpenses).
		Add(legacy)

	offsettable := in.OffsettableAssets()

	// The gap is clamped at zero: assets beyond the gross need never
	// produce a negative figure.
	netGap := decimal.Max(grossNeed.Sub(offsettable), decimal.Zero)

	nc.Logger.Debugf("needs analysis: gross=%s offsettable=%s gap=%s",
		grossNeed.StringFixed(2), offsettable.StringFixed(2), netGap.StringFixed(2))

	return &domain.CoverageNeedsResult{
		IncomeReplacement: incomeReplacement,
		DebtCoverage:      debtCoverage,
		EducationFunding:  educationFunding,
		FinalExpenses:     finalExpenses,
		LegacyAmount:      legacy,
		GrossNeed:         grossNeed,
		OffsettableAssets: offsettable,
		NetGap:            netGap,
		ReplacementYears:  replacementYears,
	}, nil
}

// replacementYears derives the income replacement horizon from the distance
// to the retirement-age proxy, floored so near-retirement applicants still
// get meaningful coverage and capped for young applicants.
func (nc *NeedsCalculator) replacementYears(age int) int {
	years := nc.Config.RetirementAgeProxy - age
	if years < nc.Config.MinReplacementYears {
		return nc.Config.MinReplacementYears
	}
	if years > nc.Config.MaxReplacementYears {
		return nc.Config.MaxReplacementYears
	}
	return years
}

// educationFunding sums the inflation-adjusted per-child cost across the
// funding horizon for every dependent. The first funding year is at today's
// cost; each later year compounds at the assessment's inflation rate.
func (nc *NeedsCalculator) educationFunding(in *domain.AssessmentInput) decimal.Decimal {
	if in.Dependents == 0 || in.EducationYearsRemaining == 0 || in.AnnualEducationCostPerChild.IsZero() {
		return decimal.Zero
	}

	growth := decimal.NewFromInt(1).Add(in.InflationRate)
	factor := decimal.NewFromInt(1)
	perChild := decimal.Zero
	for year := 0; year < in.EducationYearsRemaining; year++ {
		perChild = perChild.Add(in.AnnualEducationCostPerChild.Mul(factor))
		factor = factor.Mul(growth)
	}

	return perChild.Mul(decimal.NewFromInt(int64(in.Dependents)))
}
