// Package analysis implements the investment scoring suite: Piotroski
// F-Score, Altman Z-Score, Graham and DCF intrinsic values, the magic
// formula rank, and the composite value/quality/safety/dividend/growth/
// momentum scoring that feeds grades and recommendations.
package analysis

import (
	"math"

	"cse_research/pkg/core/config"
)

// Input carries the per-company figures the calculators need. Percentages
// (ROE, margins, growth, dividend yield) are in percent units, matching how
// the screeners and thresholds express them.
type Input struct {
	NetProfit          float64
	Revenue            float64
	EPS                float64
	OperatingCashFlow  float64
	FreeCashFlow       float64
	ROA                float64 // percent
	ROE                float64 // percent
	GrossMargin        float64 // percent
	NetMargin          float64 // percent
	AssetTurnover      float64
	DebtEquity         float64
	CurrentRatio       float64
	TotalAssets        float64
	TotalLiabilities   float64
	CurrentAssets      float64
	CurrentLiabilities float64
	RetainedEarnings   float64
	OperatingProfit    float64

	Price             float64
	PERatio           float64
	PBRatio           float64
	MarketCap         float64
	SharesOutstanding float64
	DividendYield     float64 // percent
	PayoutRatio       float64 // percent
	EPSGrowth         float64 // percent
	RevenueGrowth     float64 // percent
	ChangePercent     float64 // percent
	High52Week        float64
	Low52Week         float64
}

// Scores is the full assessment for one company period.
type Scores struct {
	PiotroskiF     int     `json:"piotroski_f_score"`
	AltmanZ        float64 `json:"altman_z_score"`
	GrahamValue    float64 `json:"graham_value"`
	GrahamUpside   float64 `json:"graham_upside"` // percent upside to Graham value
	DCFValue       float64 `json:"dcf_value"`     // per share; 0 when shares outstanding are unknown
	PEGRatio       float64 `json:"peg_ratio"`
	MagicFormula   int     `json:"magic_formula_rank"` // 1-100, lower is better
	ValueScore     int     `json:"value_score"`
	QualityScore   int     `json:"quality_score"`
	SafetyScore    int     `json:"safety_score"`
	DividendScore  int     `json:"dividend_score"`
	GrowthScore    int     `json:"growth_score"`
	MomentumScore  int     `json:"momentum_score"`
	Composite      int     `json:"composite_score"`
	Grade          string  `json:"investment_grade"`
	Recommendation string  `json:"recommendation"`
}

// Analyzer evaluates companies against configured thresholds and weights.
type Analyzer struct {
	thresholds config.ValuationThresholds
	weights    config.ScoringWeights
}

// NewAnalyzer builds an analyzer; weights are normalized to sum to 1.
func NewAnalyzer(t config.ValuationThresholds, w config.ScoringWeights) *Analyzer {
	return &Analyzer{thresholds: t, weights: w.Normalize()}
}

// Discounted cash flow assumptions: a five year projection at the observed
// EPS growth capped at 15%, a 10% discount rate and a 2% terminal growth.
const (
	dcfYears          = 5
	dcfDiscountRate   = 0.10
	dcfTerminalGrowth = 0.02
	dcfGrowthCap      = 0.15
)

// Analyze runs every calculator and combines them into a grade and
// recommendation.
func (a *Analyzer) Analyze(in Input) Scores {
	s := Scores{
		PiotroskiF:    PiotroskiFScore(in),
		AltmanZ:       AltmanZScore(in),
		GrahamValue:   GrahamValue(in.EPS, in.EPSGrowth, 0),
		PEGRatio:      PEGRatio(in.PERatio, in.EPSGrowth),
		MagicFormula:  MagicFormulaRank(in),
		ValueScore:    a.valueScore(in),
		QualityScore:  a.qualityScore(in),
		SafetyScore:   a.safetyScore(in),
		DividendScore: a.dividendScore(in),
		GrowthScore:   a.growthScore(in),
		MomentumScore: momentumScore(in),
	}
	if s.GrahamValue > 0 && in.Price > 0 {
		s.GrahamUpside = (s.GrahamValue - in.Price) / in.Price * 100
	}
	if in.SharesOutstanding > 0 {
		growth := in.EPSGrowth / 100
		if growth < 0 {
			growth = 0
		}
		if growth > dcfGrowthCap {
			growth = dcfGrowthCap
		}
		s.DCFValue = DCFValue(in.FreeCashFlow, growth, dcfDiscountRate, dcfTerminalGrowth, dcfYears, in.SharesOutstanding)
	}

	composite := a.weights.Value*float64(s.ValueScore) +
		a.weights.Quality*float64(s.QualityScore) +
		a.weights.Safety*float64(s.SafetyScore) +
		a.weights.Dividend*float64(s.DividendScore) +
		a.weights.Growth*float64(s.GrowthScore) +
		a.weights.Momentum*float64(s.MomentumScore)
	s.Composite = int(math.Round(composite))

	s.Grade = grade(s.Composite, s.PiotroskiF, s.AltmanZ)
	s.Recommendation = recommendation(s.Composite, s.PiotroskiF, s.AltmanZ, s.GrahamUpside)
	return s
}

// PiotroskiFScore is the 0-9 financial strength score. Single-period data
// means the year-over-year criteria use level proxies, as the source data
// rarely carries two fully-extracted consecutive years.
func PiotroskiFScore(in Input) int {
	score := 0

	// Profitability
	if in.NetProfit > 0 || in.EPS > 0 {
		score++
	}
	if in.OperatingCashFlow > 0 {
		score++
	}
	if in.ROA > 0 {
		score++
	}
	if (in.OperatingCashFlow > in.NetProfit && in.NetProfit > 0) ||
		(in.OperatingCashFlow > 0 && in.EPS > 0 && in.NetProfit == 0) {
		score++
	}

	// Leverage and liquidity
	if in.DebtEquity > 0 && in.DebtEquity < 0.5 {
		score++
	}
	if in.CurrentRatio > 1.0 {
		score++
	}
	if in.DebtEquity > 0 && in.DebtEquity < 1 && in.ROE > 10 {
		score++ // dilution proxy
	}

	// Efficiency
	if in.GrossMargin > 20 {
		score++
	}
	if in.AssetTurnover > 0.5 {
		score++
	}

	if score > 9 {
		score = 9
	}
	return score
}

// AltmanZScore is the manufacturing-form bankruptcy predictor:
// Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E. Returns 0 when the balance sheet
// inputs are absent.
func AltmanZScore(in Input) float64 {
	if in.TotalAssets == 0 || in.TotalLiabilities == 0 {
		return 0
	}
	workingCapital := in.CurrentAssets - in.CurrentLiabilities
	A := workingCapital / in.TotalAssets
	B := in.RetainedEarnings / in.TotalAssets
	C := in.OperatingProfit / in.TotalAssets
	D := in.MarketCap / in.TotalLiabilities
	E := in.Revenue / in.TotalAssets
	return 1.2*A + 1.4*B + 3.3*C + 0.6*D + 1.0*E
}

// GrahamValue is Benjamin Graham's revised intrinsic value formula
// V = EPS x (8.5 + 2g) x 4.4/Y. aaaYield defaults to 4.4 when zero.
func GrahamValue(eps, growthPercent, aaaYield float64) float64 {
	if eps <= 0 {
		return 0
	}
	if aaaYield <= 0 {
		aaaYield = 4.4
	}
	return eps * (8.5 + 2*growthPercent) * (4.4 / aaaYield)
}

// DCFValue projects free cash flow over `years` and discounts it plus a
// terminal perpetuity back to a per-share value.
func DCFValue(freeCashFlow, growthRate, discountRate, terminalGrowth float64, years int, sharesOutstanding float64) float64 {
	if freeCashFlow <= 0 || years <= 0 || discountRate <= terminalGrowth {
		return 0
	}
	if sharesOutstanding <= 0 {
		sharesOutstanding = 1
	}

	var presentValue float64
	for y := 1; y <= years; y++ {
		projected := freeCashFlow * math.Pow(1+growthRate, float64(y))
		presentValue += projected / math.Pow(1+discountRate, float64(y))
	}

	terminalFCF := freeCashFlow * math.Pow(1+growthRate, float64(years)) * (1 + terminalGrowth)
	terminalValue := terminalFCF / (discountRate - terminalGrowth)
	presentValue += terminalValue / math.Pow(1+discountRate, float64(years))

	return presentValue / sharesOutstanding
}

// PEGRatio is P/E divided by growth; 0 when undefined.
func PEGRatio(pe, growthPercent float64) float64 {
	if pe <= 0 || growthPercent <= 0 {
		return 0
	}
	return pe / growthPercent
}

// MagicFormulaRank is Greenblatt's rank on earnings yield and return on
// capital, folded into a single 1-100 rank where lower is better. ROC is
// proxied by ROE deleveraged by the debt/equity ratio.
func MagicFormulaRank(in Input) int {
	var earningsYield float64
	if in.PERatio > 0 {
		earningsYield = 100 / in.PERatio
	}
	roc := in.ROE
	if in.DebtEquity > 0 {
		roc = in.ROE / (1 + in.DebtEquity)
	}

	eyScore := math.Min(earningsYield, 20) / 20 * 50
	rocScore := math.Min(math.Max(roc, 0), 30) / 30 * 50

	rank := 100 - int(eyScore+rocScore)
	if rank < 1 {
		rank = 1
	}
	if rank > 100 {
		rank = 100
	}
	return rank
}

// momentumScore rates price action 0-100: position in the 52-week range
// (the middle of the range scores best, extremes are penalized), the daily
// change, and the discount from the 52-week high.
func momentumScore(in Input) int {
	score := 0

	if in.Price > 0 && in.High52Week > in.Low52Week {
		position := (in.Price - in.Low52Week) / (in.High52Week - in.Low52Week) * 100
		switch {
		case position >= 40 && position <= 60:
			score += 50
		case position >= 30 && position <= 70:
			score += 40
		case position >= 20 && position <= 80:
			score += 30
		case position < 20:
			score += 35 // near the low, potential value
		default:
			score += 20 // near the high, momentum but risky
		}
	}

	switch {
	case in.ChangePercent >= 3:
		score += 30
	case in.ChangePercent >= 2:
		score += 25
	case in.ChangePercent >= 1:
		score += 20
	case in.ChangePercent >= 0:
		score += 15
	case in.ChangePercent >= -1:
		score += 10
	case in.ChangePercent >= -2:
		score += 5
	}

	if in.Price > 0 && in.High52Week > 0 {
		discount := (in.High52Week - in.Price) / in.High52Week * 100
		switch {
		case discount >= 20 && discount <= 40:
			score += 20
		case discount >= 10 && discount <= 50:
			score += 15
		case discount < 10:
			score += 10
		default:
			score += 5 // more than halved, too beaten down
		}
	}

	return clampScore(score)
}

func (a *Analyzer) valueScore(in Input) int {
	score := 0
	score += bandLowerBetter(in.PERatio, 10, a.thresholds.PEMax, 20, 30)
	score += bandLowerBetter(in.PBRatio, 1.0, a.thresholds.PBMax, 2.0, 3.0)
	if in.Price > 0 {
		if gv := GrahamValue(in.EPS, in.EPSGrowth, 0); gv > in.Price {
			score += 20
		}
	}
	return clampScore(score)
}

func (a *Analyzer) qualityScore(in Input) int {
	score := 0
	score += bandHigherBetter(in.ROE, 20, a.thresholds.ROEMin, 10, 5)
	score += bandHigherBetter(in.NetMargin, 20, a.thresholds.ProfitMarginMin, 5, 2)
	if in.OperatingCashFlow > 0 {
		score += 20
	}
	return clampScore(score)
}

func (a *Analyzer) safetyScore(in Input) int {
	score := 0
	score += bandLowerBetter(in.DebtEquity, 0.3, a.thresholds.DebtEquityMax, 1.0, 1.5)
	score += bandHigherBetter(in.CurrentRatio, 2.0, 1.5, 1.2, 1.0)
	if z := AltmanZScore(in); z >= 2.99 {
		score += 20
	} else if z >= 1.81 {
		score += 10
	}
	return clampScore(score)
}

func (a *Analyzer) dividendScore(in Input) int {
	score := 0
	score += bandHigherBetter(in.DividendYield, 6, a.thresholds.DividendYieldMin, 2, 1)
	if in.PayoutRatio > 0 && in.PayoutRatio < 70 {
		score += 20
	}
	return clampScore(score)
}

func (a *Analyzer) growthScore(in Input) int {
	score := 0
	score += bandHigherBetter(in.EPSGrowth, 20, a.thresholds.EPSGrowthMin, 5, 0)
	score += bandHigherBetter(in.RevenueGrowth, 20, a.thresholds.RevenueGrowthMin, 5, 0)
	return clampScore(score)
}

// bandHigherBetter buckets a metric into 40/30/20/10 points against four
// descending cut-offs; 0 points below the last.
func bandHigherBetter(v, excellent, good, fair, poor float64) int {
	switch {
	case v >= excellent:
		return 40
	case v >= good:
		return 30
	case v >= fair:
		return 20
	case v > poor:
		return 10
	default:
		return 0
	}
}

// bandLowerBetter is the inverse: lower values earn more points. Zero or
// negative metrics score nothing, since a missing P/E is not a cheap P/E.
func bandLowerBetter(v, excellent, good, fair, poor float64) int {
	if v <= 0 {
		return 0
	}
	switch {
	case v <= excellent:
		return 40
	case v <= good:
		return 30
	case v <= fair:
		return 20
	case v <= poor:
		return 10
	default:
		return 0
	}
}

func clampScore(s int) int {
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}

func grade(composite, piotroski int, altman float64) string {
	adjusted := composite
	if piotroski >= 8 {
		adjusted += 5
	}
	if altman > 0 && altman < 1.81 {
		adjusted -= 15 // distress zone overrides an otherwise decent score
	}
	switch {
	case adjusted >= 80:
		return "A"
	case adjusted >= 65:
		return "B"
	case adjusted >= 50:
		return "C"
	case adjusted >= 35:
		return "D"
	default:
		return "F"
	}
}

func recommendation(composite, piotroski int, altman, grahamUpside float64) string {
	if altman > 0 && altman < 1.81 {
		return "Avoid"
	}
	switch {
	case composite >= 75 && piotroski >= 7 && grahamUpside > 20:
		return "Strong Buy"
	case composite >= 65:
		return "Buy"
	case composite >= 45:
		return "Hold"
	case composite >= 30:
		return "Sell"
	default:
		return "Avoid"
	}
}
