package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// PolicyParameters describe the permanent policy to illustrate.
type PolicyParameters struct {
	FaceAmount    decimal.Decimal
	AnnualPremium decimal.Decimal

	// CreditingRate is the assumed annual crediting rate, bounded by the
	// policy config (0.06-0.08 by default).
	CreditingRate decimal.Decimal

	// HorizonYears is the projection length, bounded by the policy config
	// (20-40 by default).
	HorizonYears int

	CurrentAge int
}

// CashValueProjector simulates the multi-decade cash-value trajectory of an
// indexed universal life policy. Identical parameters always produce an
// identical year-by-year sequence.
type CashValueProjector struct {
	Config PolicyConfig
	Logger Logger
}

// NewCashValueProjector creates a projector with the given policy config.
func NewCashValueProjector(cfg PolicyConfig) *CashValueProjector {
	return &CashValueProjector{Config: cfg, Logger: NopLogger{}}
}

// ValidateParameters checks the policy parameters against the supported
// bounds, failing with a field-level ValidationError.
func (p *CashValueProjector) ValidateParameters(params PolicyParameters) error {
	cfg := p.Config
	if !params.FaceAmount.IsPositive() {
		return NewValidationError("face_amount", "must be positive, got %s", params.FaceAmount.StringFixed(2))
	}
	if params.AnnualPremium.IsNegative() {
		return NewValidationError("annual_premium", "cannot be negative, got %s", params.AnnualPremium.StringFixed(2))
	}
	if params.CreditingRate.LessThan(cfg.MinCreditingRate) || params.CreditingRate.GreaterThan(cfg.MaxCreditingRate) {
		return NewValidationError("crediting_rate", "must be between %s and %s, got %s",
			cfg.MinCreditingRate, cfg.MaxCreditingRate, params.CreditingRate)
	}
	if params.HorizonYears < cfg.MinHorizonYears || params.HorizonYears > cfg.MaxHorizonYears {
		return NewValidationError("horizon_years", "must be between %d and %d, got %d",
			cfg.MinHorizonYears, cfg.MaxHorizonYears, params.HorizonYears)
	}
	if params.CurrentAge < 18 || params.CurrentAge > 99 {
		return NewValidationError("current_age", "must be between 18 and 99, got %d", params.CurrentAge)
	}
	return nil
}

// Iterator returns a restartable per-year sequence for the parameters.
// Callers that only need summary figures can consume it without
// materializing the full series; Project materializes it.
func (p *CashValueProjector) Iterator(params PolicyParameters) (*ProjectionIterator, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, err
	}

	// The 7-pay annual limit is fixed at issue from face amount and
	// issue age; it does not move with attained age.
	sevenPayLimit := params.FaceAmount.
		Div(decimal.NewFromInt(1000)).
		Mul(rateForAge(p.Config.SevenPayBands, params.CurrentAge))

	return &ProjectionIterator{
		cfg:           p.Config,
		params:        params,
		sevenPayLimit: sevenPayLimit,
	}, nil
}

// Project runs the full projection and materializes every year.
func (p *CashValueProjector) Project(params PolicyParameters) (*domain.CashValueProjection, error) {
	it, err := p.Iterator(params)
	if err != nil {
		return nil, err
	}

	years := make([]domain.PolicyYear, 0, params.HorizonYears)
	for {
		year, ok := it.Next()
		if !ok {
			break
		}
		years = append(years, year)
	}

	proj := &domain.CashValueProjection{
		FaceAmount:     params.FaceAmount,
		AnnualPremium:  params.AnnualPremium,
		CreditingRate:  params.CreditingRate,
		HorizonYears:   params.HorizonYears,
		Years:          years,
		MECRisk:        it.MECYear() > 0,
		MECYear:        it.MECYear(),
		FinalCashValue: it.CashValue(),
		TotalPremiums:  it.CumulativePremium(),
		BreakEvenYear:  it.BreakEvenYear(),
	}

	p.Logger.Debugf("cash-value projection: horizon=%d final=%s mec_year=%d",
		proj.HorizonYears, proj.FinalCashValue.StringFixed(2), proj.MECYear)

	return proj, nil
}

// FinalYear consumes the sequence and returns only the last year's record,
// without building the series.
func (p *CashValueProjector) FinalYear(params PolicyParameters) (domain.PolicyYear, error) {
	it, err := p.Iterator(params)
	if err != nil {
		return domain.PolicyYear{}, err
	}
	var last domain.PolicyYear
	for {
		year, ok := it.Next()
		if !ok {
			return last, nil
		}
		last = year
	}
}

// ProjectionIterator produces policy years one at a time. It is finite
// (bounded by the horizon), deterministic, and restartable: a fresh iterator
// from the same parameters regenerates the identical sequence.
type ProjectionIterator struct {
	cfg           PolicyConfig
	params        PolicyParameters
	sevenPayLimit decimal.Decimal

	year          int
	cashValue     decimal.Decimal
	cumPremium    decimal.Decimal
	mecYear       int
	breakEvenYear int
}

// Next advances one policy year. The second return is false once the
// horizon is exhausted.
func (it *ProjectionIterator) Next() (domain.PolicyYear, bool) {
	if it.year >= it.params.HorizonYears {
		return domain.PolicyYear{}, false
	}
	it.year++

	cfg := it.cfg
	premium := it.params.AnnualPremium
	attainedAge := it.params.CurrentAge + it.year - 1

	// Front-loaded policy fees: only part of the premium reaches the
	// cash value, less in year one.
	allocationRate := cfg.RenewalAllocationRate
	if it.year == 1 {
		allocationRate = cfg.FirstYearAllocationRate
	}
	allocated := premium.Mul(allocationRate)

	coi := it.params.FaceAmount.
		Div(decimal.NewFromInt(1000)).
		Mul(rateForAge(cfg.COIBands, attainedAge))

	// Crediting applies annually to the prior balance plus this year's
	// net allocation; no intra-year compounding.
	netAllocated := allocated.Sub(coi)
	growth := it.cashValue.Add(netAllocated).Mul(it.params.CreditingRate)
	it.cashValue = it.cashValue.Add(netAllocated).Add(growth)

	it.cumPremium = it.cumPremium.Add(premium)

	surrender := decimal.Max(it.cashValue.Sub(it.surrenderCharge()), decimal.Zero)

	if it.mecYear == 0 && it.year <= cfg.SevenPayYears {
		limit := it.sevenPayLimit.Mul(decimal.NewFromInt(int64(it.year)))
		if it.cumPremium.GreaterThan(limit) {
			it.mecYear = it.year
		}
	}
	if it.breakEvenYear == 0 && it.cashValue.GreaterThanOrEqual(it.cumPremium) {
		it.breakEvenYear = it.year
	}

	return domain.PolicyYear{
		Year:           it.year,
		AttainedAge:    attainedAge,
		PremiumPaid:    premium,
		COICharge:      coi,
		CreditedGrowth: growth,
		CashValue:      it.cashValue,
		SurrenderValue: surrender,
	}, true
}

// surrenderCharge starts at one annual premium and tapers linearly to zero
// over the configured schedule.
func (it *ProjectionIterator) surrenderCharge() decimal.Decimal {
	remaining := it.cfg.SurrenderChargeYears - it.year
	if remaining <= 0 {
		return decimal.Zero
	}
	return it.params.AnnualPremium.
		Mul(decimal.NewFromInt(int64(remaining))).
		Div(decimal.NewFromInt(int64(it.cfg.SurrenderChargeYears)))
}

// Year returns how many years have been produced so far.
func (it *ProjectionIterator) Year() int { return it.year }

// CashValue returns the cumulative cash value through the last produced year.
func (it *ProjectionIterator) CashValue() decimal.Decimal { return it.cashValue }

// CumulativePremium returns the premiums paid through the last produced year.
func (it *ProjectionIterator) CumulativePremium() decimal.Decimal { return it.cumPremium }

// MECYear returns the year the 7-pay limit was first breached, zero if never.
func (it *ProjectionIterator) MECYear() int { return it.mecYear }

// BreakEvenYear returns the first year cash value covered cumulative
// premiums, zero if it has not happened yet.
func (it *ProjectionIterator) BreakEvenYear() int { return it.breakEvenYear }
