package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// ScoringContext carries the assessment figures the score categories need
// beyond the snapshot itself: the age-indexed size benchmark needs age and
// income, liquidity needs living expenses, and insurance coverage needs the
// net gap from the needs analysis.
type ScoringContext struct {
	Age             int             `validate:"gte=18,lte=99"`
	AnnualIncome    decimal.Decimal `validate:"gte=0"`
	MonthlyExpenses decimal.Decimal `validate:"gte=0"`
	LiquidSavings   decimal.Decimal `validate:"gte=0"`
	NetGap          decimal.Decimal `validate:"gte=0"`
}

// PortfolioHealthScorer grades an existing asset allocation 0-100 across
// four positive categories plus a real-estate concentration penalty.
type PortfolioHealthScorer struct {
	Config PolicyConfig
	Logger Logger
}

// NewPortfolioHealthScorer creates a scorer with the given policy config.
func NewPortfolioHealthScorer(cfg PolicyConfig) *PortfolioHealthScorer {
	return &PortfolioHealthScorer{Config: cfg, Logger: NopLogger{}}
}

// Score evaluates a portfolio snapshot. An empty portfolio is a valid state:
// it scores 0 with a concern flag rather than failing. Negative holdings
// fail with a ValidationError.
func (s *PortfolioHealthScorer) Score(snapshot *domain.PortfolioSnapshot, scoringCtx ScoringContext) (*domain.HealthScore, error) {
	if snapshot == nil {
		return nil, NewValidationError("portfolio", "snapshot is required")
	}
	for class, value := range snapshot.Holdings {
		switch class {
		case domain.AssetStocks, domain.AssetBonds, domain.AssetCash, domain.AssetRealEstate, domain.AssetAlternative:
		default:
			return nil, NewValidationError("holdings", "unknown asset class %q", class)
		}
		if value.IsNegative() {
			return nil, NewValidationError(string(class), "holding cannot be negative, got %s", value.StringFixed(2))
		}
	}
	if snapshot.ExistingInsuranceFace.IsNegative() {
		return nil, NewValidationError("existing_insurance_face", "cannot be negative, got %s", snapshot.ExistingInsuranceFace.StringFixed(2))
	}
	if err := validateStruct(&scoringCtx); err != nil {
		return nil, err
	}

	total := snapshot.TotalInvestable()
	if total.IsZero() {
		return &domain.HealthScore{
			Score: 0,
			Breakdown: map[domain.ScoreCategory]int{
				domain.CategoryDiversification: 0,
				domain.CategorySizeAdequacy:    0,
				domain.CategoryLiquidity:       0,
				domain.CategoryInsurance:       0,
			},
			Concerns: []string{"portfolio holds no investable assets"},
		}, nil
	}

	diversity := s.diversityPoints(snapshot)
	size := s.sizeAdequacyPoints(total, scoringCtx)
	liquidity := s.liquidityPoints(scoringCtx)
	insurance := s.insurancePoints(snapshot, scoringCtx)
	penalty := s.concentrationPenalty(snapshot)

	score := diversity + size + liquidity + insurance - penalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	breakdown := map[domain.ScoreCategory]int{
		domain.CategoryDiversification: diversity,
		domain.CategorySizeAdequacy:    size,
		domain.CategoryLiquidity:       liquidity,
		domain.CategoryInsurance:       insurance,
	}
	if penalty > 0 {
		breakdown[domain.CategoryConcentration] = -penalty
	}

	concerns := s.collectConcerns(diversity, size, liquidity, insurance, penalty)

	s.Logger.Debugf("portfolio health: score=%d breakdown=%v", score, breakdown)

	return &domain.HealthScore{
		Score:     score,
		Breakdown: breakdown,
		Concerns:  concerns,
	}, nil
}

// diversityPoints counts asset classes holding at least the significant
// share floor and awards points on the configured diminishing-returns curve.
func (s *PortfolioHealthScorer) diversityPoints(snapshot *domain.PortfolioSnapshot) int {
	significant := 0
	for _, class := range domain.InvestableAssetClasses {
		if snapshot.Share(class).GreaterThanOrEqual(s.Config.SignificantShareFloor) {
			significant++
		}
	}
	return s.Config.diversityPointsFor(significant)
}

// sizeAdequacyPoints scales investable assets against an age-indexed
// multiple of annual income. With no income there is no benchmark to miss,
// so full points are awarded.
func (s *PortfolioHealthScorer) sizeAdequacyPoints(total decimal.Decimal, scoringCtx ScoringContext) int {
	max := s.Config.SizeAdequacyMax
	benchmark := scoringCtx.AnnualIncome.Mul(s.Config.sizeBenchmarkMultiple(scoringCtx.Age))
	if benchmark.IsZero() {
		return max
	}
	return scalePoints(total.Div(benchmark), max)
}

// liquidityPoints awards full points when liquid savings cover the target
// number of months of living expenses, scaling linearly to zero.
func (s *PortfolioHealthScorer) liquidityPoints(scoringCtx ScoringContext) int {
	max := s.Config.LiquidityMax
	if scoringCtx.MonthlyExpenses.IsZero() {
		return max
	}
	months := scoringCtx.LiquidSavings.Div(scoringCtx.MonthlyExpenses)
	target := decimal.NewFromInt(int64(s.Config.LiquidityTargetMonths))
	return scalePoints(months.Div(target), max)
}

// insurancePoints awards full points when the in-force face amount covers
// the net gap, scaled by the coverage ratio otherwise. A zero gap means
// nothing is uncovered, which earns full points.
func (s *PortfolioHealthScorer) insurancePoints(snapshot *domain.PortfolioSnapshot, scoringCtx ScoringContext) int {
	max := s.Config.InsuranceCoverageMax
	if scoringCtx.NetGap.IsZero() {
		return max
	}
	return scalePoints(snapshot.ExistingInsuranceFace.Div(scoringCtx.NetGap), max)
}

// concentrationPenalty applies once real estate exceeds the threshold share
// of the portfolio, scaling with the excess up to the full penalty at the
// ceiling share. Applied after the positive categories are summed.
func (s *PortfolioHealthScorer) concentrationPenalty(snapshot *domain.PortfolioSnapshot) int {
	share := snapshot.Share(domain.AssetRealEstate)
	if share.LessThanOrEqual(s.Config.ConcentrationThreshold) {
		return 0
	}
	excess := share.Sub(s.Config.ConcentrationThreshold)
	window := s.Config.ConcentrationCeiling.Sub(s.Config.ConcentrationThreshold)
	return scalePoints(excess.Div(window), s.Config.ConcentrationPenaltyMax)
}

func (s *PortfolioHealthScorer) collectConcerns(diversity, size, liquidity, insurance, penalty int) []string {
	var concerns []string
	diversityMax := s.Config.diversityPointsFor(len(s.Config.DiversityPoints))
	if belowHalf(diversity, diversityMax) {
		concerns = append(concerns, "limited asset-class diversification")
	}
	if belowHalf(size, s.Config.SizeAdequacyMax) {
		concerns = append(concerns, "portfolio below age-based size benchmark")
	}
	if belowHalf(liquidity, s.Config.LiquidityMax) {
		concerns = append(concerns, "liquid reserves below expense target")
	}
	if belowHalf(insurance, s.Config.InsuranceCoverageMax) {
		concerns = append(concerns, "life insurance coverage short of need")
	}
	if penalty > 0 {
		concerns = append(concerns, "real-estate concentration")
	}
	return concerns
}

// scalePoints converts a 0-1 ratio into whole points against a category
// maximum, capping at the maximum and flooring at zero.
func scalePoints(ratio decimal.Decimal, max int) int {
	if ratio.IsNegative() {
		return 0
	}
	one := decimal.NewFromInt(1)
	if ratio.GreaterThan(one) {
		ratio = one
	}
	points := ratio.Mul(decimal.NewFromInt(int64(max))).Round(0).IntPart()
	return int(points)
}

func belowHalf(points, max int) bool {
	return points*2 < max
}
