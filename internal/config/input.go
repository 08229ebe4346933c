package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// AssessmentFile is the on-disk input format: the assessment record, an
// optional portfolio snapshot, and optional projection overrides. Field
// bounds are enforced by the engine; the parser only checks structure.
type AssessmentFile struct {
	Assessment domain.AssessmentInput    `yaml:"assessment" json:"assessment"`
	Portfolio  *domain.PortfolioSnapshot `yaml:"portfolio,omitempty" json:"portfolio,omitempty"`
	Projection *ProjectionOverrides      `yaml:"projection,omitempty" json:"projection,omitempty"`
}

// ProjectionOverrides lets an input file tune the IUL illustration without
// touching the rest of the policy configuration.
type ProjectionOverrides struct {
	CreditingRate *decimal.Decimal `yaml:"crediting_rate,omitempty" json:"crediting_rate,omitempty"`
	HorizonYears  *int             `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
}

// InputParser handles parsing of assessment input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an assessment from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*AssessmentFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML bytes into an assessment file.
func (ip *InputParser) Parse(data []byte) (*AssessmentFile, error) {
	var file AssessmentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.checkStructure(&file); err != nil {
		return nil, fmt.Errorf("input file validation failed: %w", err)
	}

	return &file, nil
}

// checkStructure rejects structurally broken files early with messages that
// name the offending key. Numeric bounds are the engine's job.
func (ip *InputParser) checkStructure(file *AssessmentFile) error {
	if file.Portfolio != nil {
		for class := range file.Portfolio.Holdings {
			if !knownAssetClass(class) {
				return fmt.Errorf("portfolio.holdings: unknown asset class %q", class)
			}
		}
	}
	if file.Projection != nil && file.Projection.HorizonYears != nil && *file.Projection.HorizonYears <= 0 {
		return fmt.Errorf("projection.horizon_years must be positive, got %d", *file.Projection.HorizonYears)
	}
	return nil
}

func knownAssetClass(class domain.AssetClass) bool {
	for _, known := range domain.InvestableAssetClasses {
		if class == known {
			return true
		}
	}
	return false
}

// WriteExampleFile writes a starter assessment file callers can edit.
func (ip *InputParser) WriteExampleFile(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleAssessment())
	if err != nil {
		return fmt.Errorf("failed to marshal example: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleAssessment builds a representative married-with-children
// assessment including a portfolio snapshot.
func (ip *InputParser) CreateExampleAssessment() *AssessmentFile {
	return &AssessmentFile{
		Assessment: domain.AssessmentInput{
			Age:                         38,
			MaritalStatus:               domain.MaritalMarried,
			Dependents:                  2,
			MonthlyIncome:               decimal.NewFromInt(7500),
			MonthlyExpenses:             decimal.NewFromInt(5200),
			MortgageBalance:             decimal.NewFromInt(285000),
			OtherDebt:                   decimal.NewFromInt(18000),
			AnnualEducationCostPerChild: decimal.NewFromInt(12000),
			EducationYearsRemaining:     8,
			LegacyAmount:                decimal.NewFromInt(50000),
			FuneralExpense:              decimal.NewFromInt(15000),
			LiquidSavings:               decimal.NewFromInt(24000),
			InvestmentValue:             decimal.NewFromInt(110000),
			ExistingInsuranceFace:       decimal.NewFromInt(150000),
			WantsCashValueGrowth:        true,
			PriceSensitivity:            domain.PriceSensitivityMedium,
			InflationRate:               decimal.NewFromFloat(0.03),
		},
		Portfolio: &domain.PortfolioSnapshot{
			Holdings: map[domain.AssetClass]decimal.Decimal{
				domain.AssetStocks:     decimal.NewFromInt(68000),
				domain.AssetBonds:      decimal.NewFromInt(22000),
				domain.AssetCash:       decimal.NewFromInt(24000),
				domain.AssetRealEstate: decimal.NewFromInt(20000),
			},
			ExistingInsuranceFace: decimal.NewFromInt(150000),
		},
	}
}
