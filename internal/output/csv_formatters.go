package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// CSVSummarizer emits a single-row summary of the evaluation.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.EvaluationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"GrossNeed", "OffsettableAssets", "NetGap",
		"HealthScore", "Track", "FaceAmount", "DurationYears",
		"EstAnnualPremium", "FinalCashValue", "RationaleTags",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	healthScore := ""
	if result.Health != nil {
		healthScore = intToString(result.Health.Score)
	}
	finalCashValue := ""
	if result.Projection != nil {
		finalCashValue = result.Projection.FinalCashValue.StringFixed(2)
	}
	rec := result.Recommendation
	row := []string{
		result.Needs.GrossNeed.StringFixed(2),
		result.Needs.OffsettableAssets.StringFixed(2),
		result.Needs.NetGap.StringFixed(2),
		healthScore,
		string(rec.Track),
		rec.FaceAmount.StringFixed(2),
		intToString(rec.DurationYears),
		rec.EstimatedAnnualPremium.StringFixed(2),
		finalCashValue,
		strings.Join(rec.RationaleTags, ";"),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVProjectionExporter emits the year-by-year projection detail, one row
// per policy year; without a projection it falls back to the summary row.
type CSVProjectionExporter struct{}

func (c CSVProjectionExporter) Name() string { return "detailed-csv" }

func (c CSVProjectionExporter) Format(result *domain.EvaluationResult) ([]byte, error) {
	if result.Projection == nil {
		return CSVSummarizer{}.Format(result)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "AttainedAge", "PremiumPaid", "COICharge", "CreditedGrowth", "CashValue", "SurrenderValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, year := range result.Projection.Years {
		row := []string{
			intToString(year.Year),
			intToString(year.AttainedAge),
			year.PremiumPaid.StringFixed(2),
			year.COICharge.StringFixed(2),
			year.CreditedGrowth.StringFixed(2),
			year.CashValue.StringFixed(2),
			year.SurrenderValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
