package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

func TestParseCompleteAssessment(t *testing.T) {
	input := []byte(`
assessment:
  age: 42
  marital_status: married
  dependents: 1
  monthly_income: 8200.50
  monthly_expenses: 5000
  mortgage_balance: 310000
  annual_education_cost_per_child: 14000
  education_years_remaining: 6
  liquid_savings: 30000
  wants_cash_value_growth: true
  price_sensitivity: low
portfolio:
  holdings:
    stocks: 95000
    bonds: 40000
  existing_insurance_face: 100000
projection:
  crediting_rate: 0.07
  horizon_years: 25
`)

	parser := NewInputParser()
	file, err := parser.Parse(input)
	require.NoError(t, err)

	assert.Equal(t, 42, file.Assessment.Age)
	assert.Equal(t, domain.MaritalMarried, file.Assessment.MaritalStatus)
	assert.True(t, file.Assessment.MonthlyIncome.Equal(decimal.NewFromFloat(8200.50)))
	assert.True(t, file.Assessment.WantsCashValueGrowth)
	assert.Equal(t, domain.PriceSensitivityLow, file.Assessment.PriceSensitivity)

	require.NotNil(t, file.Portfolio)
	assert.True(t, file.Portfolio.Value(domain.AssetStocks).Equal(decimal.NewFromInt(95000)))
	assert.True(t, file.Portfolio.ExistingInsuranceFace.Equal(decimal.NewFromInt(100000)))

	require.NotNil(t, file.Projection)
	require.NotNil(t, file.Projection.CreditingRate)
	assert.True(t, file.Projection.CreditingRate.Equal(decimal.NewFromFloat(0.07)))
	require.NotNil(t, file.Projection.HorizonYears)
	assert.Equal(t, 25, *file.Projection.HorizonYears)
}

func TestParseMinimalAssessment(t *testing.T) {
	input := []byte(`
assessment:
  age: 30
  marital_status: single
  monthly_income: 4000
  price_sensitivity: high
`)

	parser := NewInputParser()
	file, err := parser.Parse(input)
	require.NoError(t, err)

	assert.Nil(t, file.Portfolio)
	assert.Nil(t, file.Projection)
	assert.True(t, file.Assessment.InflationRate.IsZero())
}

func TestParseRejectsUnknownAssetClass(t *testing.T) {
	input := []byte(`
assessment:
  age: 30
  marital_status: single
  monthly_income: 4000
  price_sensitivity: high
portfolio:
  holdings:
    collectibles: 5000
`)

	parser := NewInputParser()
	_, err := parser.Parse(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown asset class")
	assert.Contains(t, err.Error(), "collectibles")
}

func TestParseRejectsNonPositiveHorizonOverride(t *testing.T) {
	input := []byte(`
assessment:
  age: 30
  marital_status: single
  monthly_income: 4000
  price_sensitivity: high
projection:
  horizon_years: 0
`)

	parser := NewInputParser()
	_, err := parser.Parse(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon_years")
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("assessment: [not: a: mapping"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestExampleFileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.WriteExampleFile(path))

	file, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	example := parser.CreateExampleAssessment()
	assert.Equal(t, example.Assessment.Age, file.Assessment.Age)
	assert.Equal(t, example.Assessment.MaritalStatus, file.Assessment.MaritalStatus)
	assert.True(t, file.Assessment.MonthlyIncome.Equal(example.Assessment.MonthlyIncome))
	require.NotNil(t, file.Portfolio)
	assert.True(t, file.Portfolio.Value(domain.AssetStocks).Equal(example.Portfolio.Value(domain.AssetStocks)))
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
