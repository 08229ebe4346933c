package domain

import (
	"github.com/shopspring/decimal"
)

// MaritalStatus enumerates the supported marital statuses.
type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "single"
	MaritalMarried   MaritalStatus = "married"
	MaritalPartnered MaritalStatus = "partnered"
)

// PriceSensitivity expresses how strongly the applicant weighs premium cost.
type PriceSensitivity string

const (
	PriceSensitivityLow    PriceSensitivity = "low"
	PriceSensitivityMedium PriceSensitivity = "medium"
	PriceSensitivityHigh   PriceSensitivity = "high"
)

// DefaultInflationRate is applied when an assessment does not specify one.
var DefaultInflationRate = decimal.NewFromFloat(0.03)

// AssessmentInput is the validated record a coverage evaluation starts from.
// All currency fields are non-negative; age bounds the projection horizon.
type AssessmentInput struct {
	Age           int           `yaml:"age" json:"age" validate:"gte=18,lte=99"`
	MaritalStatus MaritalStatus `yaml:"marital_status" json:"marital_status" validate:"required,oneof=single married partnered"`
	Dependents    int           `yaml:"dependents" json:"dependents" validate:"gte=0"`

	MonthlyIncome   decimal.Decimal `yaml:"monthly_income" json:"monthly_income" validate:"gte=0"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses" validate:"gte=0"`

	MortgageBalance decimal.Decimal `yaml:"mortgage_balance" json:"mortgage_balance" validate:"gte=0"`
	OtherDebt       decimal.Decimal `yaml:"other_debt" json:"other_debt" validate:"gte=0"`

	// Education funding: per-child annual cost, inflated across the
	// remaining funding years for each dependent.
	AnnualEducationCostPerChild decimal.Decimal `yaml:"annual_education_cost_per_child" json:"annual_education_cost_per_child" validate:"gte=0"`
	EducationYearsRemaining     int             `yaml:"education_years_remaining" json:"education_years_remaining" validate:"gte=0,lte=30"`

	LegacyAmount   decimal.Decimal `yaml:"legacy_amount" json:"legacy_amount" validate:"gte=0"`
	FuneralExpense decimal.Decimal `yaml:"funeral_expense" json:"funeral_expense" validate:"gte=0"`

	LiquidSavings         decimal.Decimal `yaml:"liquid_savings" json:"liquid_savings" validate:"gte=0"`
	InvestmentValue       decimal.Decimal `yaml:"investment_value" json:"investment_value" validate:"gte=0"`
	ExistingInsuranceFace decimal.Decimal `yaml:"existing_insurance_face" json:"existing_insurance_face" validate:"gte=0"`

	WantsCashValueGrowth bool             `yaml:"wants_cash_value_growth" json:"wants_cash_value_growth"`
	PriceSensitivity     PriceSensitivity `yaml:"price_sensitivity" json:"price_sensitivity" validate:"required,oneof=low medium high"`

	// InflationRate is annual, expressed as a fraction (0.03 = 3%).
	// Zero means "use the default"; see Normalize.
	InflationRate decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate" validate:"gte=0,lte=0.2"`
}

// Normalize fills defaulted fields. It returns the receiver's value, leaving
// the original untouched, so callers can normalize without mutating input.
func (a AssessmentInput) Normalize() AssessmentInput {
	if a.InflationRate.IsZero() {
		a.InflationRate = DefaultInflationRate
	}
	return a
}

// AnnualIncome returns the gross annual income.
func (a *AssessmentInput) AnnualIncome() decimal.Decimal {
	return a.MonthlyIncome.Mul(decimal.NewFromInt(12))
}

// OffsettableAssets returns the assets that reduce the coverage gap:
// liquid savings, investments, and in-force insurance face amount.
func (a *AssessmentInput) OffsettableAssets() decimal.Decimal {
	return a.LiquidSavings.Add(a.InvestmentValue).Add(a.ExistingInsuranceFace)
}

// AssetClass identifies an investable asset class in a portfolio snapshot.
type AssetClass string

const (
	AssetStocks      AssetClass = "stocks"
	AssetBonds       AssetClass = "bonds"
	AssetCash        AssetClass = "cash"
	AssetRealEstate  AssetClass = "real_estate"
	AssetAlternative AssetClass = "alternative"
)

// InvestableAssetClasses lists every class a snapshot may hold, in a stable
// order for deterministic iteration.
var InvestableAssetClasses = []AssetClass{
	AssetStocks,
	AssetBonds,
	AssetCash,
	AssetRealEstate,
	AssetAlternative,
}

// PortfolioSnapshot maps asset classes to current dollar values. The in-force
// insurance face amount is tracked separately from investable assets.
type PortfolioSnapshot struct {
	Holdings              map[AssetClass]decimal.Decimal `yaml:"holdings" json:"holdings"`
	ExistingInsuranceFace decimal.Decimal                `yaml:"existing_insurance_face" json:"existing_insurance_face" validate:"gte=0"`
}

// Value returns the holding for a class, zero when absent.
func (ps *PortfolioSnapshot) Value(class AssetClass) decimal.Decimal {
	if ps.Holdings == nil {
		return decimal.Zero
	}
	return ps.Holdings[class]
}

// TotalInvestable sums all investable holdings (insurance face excluded).
func (ps *PortfolioSnapshot) TotalInvestable() decimal.Decimal {
	total := decimal.Zero
	for _, class := range InvestableAssetClasses {
		total = total.Add(ps.Value(class))
	}
	return total
}

// Share returns a class's fraction of the total investable value,
// zero for an empty portfolio.
func (ps *PortfolioSnapshot) Share(class AssetClass) decimal.Decimal {
	total := ps.TotalInvestable()
	if total.IsZero() {
		return decimal.Zero
	}
	return ps.Value(class).Div(total)
}
