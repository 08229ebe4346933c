package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// ConsoleFormatter renders a human-readable evaluation report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "COVERAGE NEEDS ANALYSIS")
	fmt.Fprintln(&buf, "=======================")
	needs := result.Needs
	fmt.Fprintf(&buf, "Income Replacement (%d yrs): %s\n", needs.ReplacementYears, FormatCurrency(needs.IncomeReplacement))
	fmt.Fprintf(&buf, "Debt Coverage:               %s\n", FormatCurrency(needs.DebtCoverage))
	fmt.Fprintf(&buf, "Education Funding:           %s\n", FormatCurrency(needs.EducationFunding))
	fmt.Fprintf(&buf, "Final Expenses:              %s\n", FormatCurrency(needs.FinalExpenses))
	fmt.Fprintf(&buf, "Legacy:                      %s\n", FormatCurrency(needs.LegacyAmount))
	fmt.Fprintf(&buf, "Gross Need:                  %s\n", FormatCurrency(needs.GrossNeed))
	fmt.Fprintf(&buf, "Offsettable Assets:          %s\n", FormatCurrency(needs.OffsettableAssets))
	fmt.Fprintf(&buf, "Net Coverage Gap:            %s\n", FormatCurrency(needs.NetGap))

	if result.Health != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "PORTFOLIO HEALTH")
		fmt.Fprintln(&buf, "================")
		fmt.Fprintf(&buf, "Score: %d / 100\n", result.Health.Score)
		writeBreakdown(&buf, result.Health.Breakdown)
		for _, concern := range result.Health.Concerns {
			fmt.Fprintf(&buf, "  ! %s\n", concern)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "RECOMMENDATION")
	fmt.Fprintln(&buf, "==============")
	rec := result.Recommendation
	fmt.Fprintf(&buf, "Track:       %s\n", strings.ToUpper(string(rec.Track)))
	fmt.Fprintf(&buf, "Face Amount: %s\n", FormatCurrency(rec.FaceAmount))
	fmt.Fprintf(&buf, "Duration:    %d years\n", rec.DurationYears)
	if rec.EstimatedAnnualPremium.IsPositive() {
		fmt.Fprintf(&buf, "Est. Annual Premium: %s\n", FormatCurrency(rec.EstimatedAnnualPremium))
	}
	fmt.Fprintf(&buf, "Rationale:   %s\n", strings.Join(rec.RationaleTags, ", "))

	if result.Projection != nil {
		fmt.Fprintln(&buf)
		c.writeProjection(&buf, result.Projection)
	}

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeProjection(buf *bytes.Buffer, proj *domain.CashValueProjection) {
	fmt.Fprintln(buf, "CASH-VALUE PROJECTION")
	fmt.Fprintln(buf, "=====================")
	fmt.Fprintf(buf, "Face %s, premium %s/yr, crediting %s, %d years\n",
		FormatCurrency(proj.FaceAmount), FormatCurrency(proj.AnnualPremium),
		FormatPercent(proj.CreditingRate), proj.HorizonYears)
	fmt.Fprintf(buf, "%-5s %-6s %12s %12s %12s %14s %14s\n",
		"Year", "Age", "Premium", "COI", "Growth", "CashValue", "Surrender")
	for _, year := range proj.Years {
		fmt.Fprintf(buf, "%-5d %-6d %12s %12s %12s %14s %14s\n",
			year.Year, year.AttainedAge,
			year.PremiumPaid.StringFixed(2),
			year.COICharge.StringFixed(2),
			year.CreditedGrowth.StringFixed(2),
			year.CashValue.StringFixed(2),
			year.SurrenderValue.StringFixed(2))
	}
	fmt.Fprintf(buf, "Final cash value: %s  Total premiums: %s\n",
		FormatCurrency(proj.FinalCashValue), FormatCurrency(proj.TotalPremiums))
	if proj.BreakEvenYear > 0 {
		fmt.Fprintf(buf, "Break-even year: %d\n", proj.BreakEvenYear)
	}
	if proj.MECRisk {
		fmt.Fprintf(buf, "MEC risk: 7-pay limit exceeded in year %d\n", proj.MECYear)
	}
}

func writeBreakdown(buf *bytes.Buffer, breakdown map[domain.ScoreCategory]int) {
	categories := make([]string, 0, len(breakdown))
	for cat := range breakdown {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(buf, "  %-26s %+d\n", cat, breakdown[domain.ScoreCategory(cat)])
	}
}
