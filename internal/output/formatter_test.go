package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

func sampleResult() *domain.EvaluationResult {
	return &domain.EvaluationResult{
		Needs: domain.CoverageNeedsResult{
			IncomeReplacement: decimal.NewFromInt(1350000),
			DebtCoverage:      decimal.NewFromInt(200000),
			GrossNeed:         decimal.NewFromInt(1550000),
			OffsettableAssets: decimal.NewFromInt(50000),
			NetGap:            decimal.NewFromInt(1500000),
			ReplacementYears:  25,
		},
		Health: &domain.HealthScore{
			Score: 62,
			Breakdown: map[domain.ScoreCategory]int{
				domain.CategoryDiversification: 24,
				domain.CategorySizeAdequacy:    8,
				domain.CategoryLiquidity:       15,
				domain.CategoryInsurance:       15,
			},
			Concerns: []string{"portfolio below age-based size benchmark"},
		},
		Recommendation: domain.ProductRecommendation{
			Track:                  domain.TrackIUL,
			FaceAmount:             decimal.NewFromInt(1500000),
			DurationYears:          20,
			EstimatedAnnualPremium: decimal.NewFromInt(18000),
			RationaleTags:          []string{"cash-value-preference", "within-iul-issue-age"},
		},
		Projection: &domain.CashValueProjection{
			FaceAmount:    decimal.NewFromInt(1500000),
			AnnualPremium: decimal.NewFromInt(18000),
			CreditingRate: decimal.NewFromFloat(0.065),
			HorizonYears:  2,
			Years: []domain.PolicyYear{
				{Year: 1, AttainedAge: 40, PremiumPaid: decimal.NewFromInt(18000), COICharge: decimal.NewFromInt(2700), CreditedGrowth: decimal.NewFromInt(819), CashValue: decimal.NewFromInt(13419), SurrenderValue: decimal.Zero},
				{Year: 2, AttainedAge: 41, PremiumPaid: decimal.NewFromInt(18000), COICharge: decimal.NewFromInt(2700), CreditedGrowth: decimal.NewFromInt(1800), CashValue: decimal.NewFromInt(29619), SurrenderValue: decimal.NewFromInt(15219)},
			},
			FinalCashValue: decimal.NewFromInt(29619),
			TotalPremiums:  decimal.NewFromInt(36000),
			BreakEvenYear:  0,
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"json", "json"},
		{"csv", "csv"},
		{"detailed-csv", "detailed-csv"},
		{"text", "console"},
		{"TEXT", "console"},
		{" json-pretty ", "json"},
		{"summary-csv", "csv"},
		{"projection-csv", "detailed-csv"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.name)
		require.NotNil(t, f, "formatter %q", tt.name)
		assert.Equal(t, tt.expected, f.Name())
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "detailed-csv", "json"}, AvailableFormatterNames())
}

func TestConsoleFormatterSections(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "COVERAGE NEEDS ANALYSIS")
	assert.Contains(t, text, "PORTFOLIO HEALTH")
	assert.Contains(t, text, "RECOMMENDATION")
	assert.Contains(t, text, "CASH-VALUE PROJECTION")
	assert.Contains(t, text, "Score: 62 / 100")
	assert.Contains(t, text, "Track:       IUL")
	assert.Contains(t, text, "! portfolio below age-based size benchmark")
}

func TestConsoleFormatterOmitsAbsentSections(t *testing.T) {
	result := sampleResult()
	result.Health = nil
	result.Projection = nil

	out, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "PORTFOLIO HEALTH")
	assert.NotContains(t, text, "CASH-VALUE PROJECTION")
}

func TestJSONFormatterOutput(t *testing.T) {
	out, err := JSONFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "needs")
	assert.Contains(t, decoded, "recommendation")
}

func TestCSVSummarizerRow(t *testing.T) {
	out, err := CSVSummarizer{}.Format(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, row := records[0], records[1]
	assert.Equal(t, "NetGap", header[2])
	assert.Equal(t, "1500000.00", row[2])
	assert.Equal(t, "62", row[3])
	assert.Equal(t, "iul", row[4])
	assert.Equal(t, "cash-value-preference;within-iul-issue-age", row[9])
}

func TestCSVProjectionExporterRows(t *testing.T) {
	out, err := CSVProjectionExporter{}.Format(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	// Header plus one row per policy year.
	require.Len(t, records, 3)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "29619.00", records[2][5])
}

func TestCSVProjectionExporterFallsBackToSummary(t *testing.T) {
	result := sampleResult()
	result.Projection = nil

	out, err := CSVProjectionExporter{}.Format(result)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "GrossNeed", records[0][0])
	// No projection means no final cash value column value.
	assert.Equal(t, "", records[1][8])
}
