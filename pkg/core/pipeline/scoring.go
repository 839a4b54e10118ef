package pipeline

import (
	"math"
	"sort"

	"cse_research/pkg/core/analysis"
	"cse_research/pkg/models"
)

// ==========================================================================
// Score attachment
// ==========================================================================

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// pct converts a fractional ratio column to percent units for the analyzer.
func pct(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v * 100
}

// growthPercent returns period-over-period growth in percent, or 0 when the
// base is missing or zero.
func growthPercent(current, prior *float64) float64 {
	if current == nil || prior == nil || *prior == 0 {
		return 0
	}
	return (*current - *prior) / math.Abs(*prior) * 100
}

// scoreInput builds the analyzer input from a dataset row and its immediate
// prior-period row (nil when the company has only one period).
func scoreInput(row, prior *models.DatasetRow) analysis.Input {
	in := analysis.Input{
		NetProfit:          deref(row.IncomeNetProfit),
		Revenue:            deref(row.IncomeRevenue),
		EPS:                deref(row.IncomeEPS),
		OperatingCashFlow:  deref(row.CashOperating),
		FreeCashFlow:       deref(row.CashFreeFlow),
		ROA:                pct(row.ROA),
		ROE:                pct(row.ROE),
		GrossMargin:        pct(row.GrossMargin),
		NetMargin:          pct(row.NetMargin),
		AssetTurnover:      deref(row.AssetTurnover),
		DebtEquity:         deref(row.DebtToEquity),
		CurrentRatio:       deref(row.CurrentRatio),
		TotalAssets:        deref(row.BalanceTotalAssets),
		TotalLiabilities:   deref(row.BalanceTotalLiabilities),
		CurrentAssets:      deref(row.BalanceCurrentAssets),
		CurrentLiabilities: deref(row.BalanceCurrentLiabilities),
		RetainedEarnings:   deref(row.BalanceRetainedEarnings),
		OperatingProfit:    deref(row.IncomeOperatingProfit),

		Price:             deref(row.Price),
		PERatio:           deref(row.PERatio),
		PBRatio:           deref(row.PBRatio),
		MarketCap:         deref(row.MarketCap),
		SharesOutstanding: deref(row.SharesOutstanding),
		DividendYield:     deref(row.DividendYield),
		ChangePercent:     deref(row.ChangePercent),
		High52Week:        deref(row.High52Week),
		Low52Week:         deref(row.Low52Week),
	}
	if prior != nil {
		in.EPSGrowth = growthPercent(row.IncomeEPS, prior.IncomeEPS)
		in.RevenueGrowth = growthPercent(row.IncomeRevenue, prior.IncomeRevenue)
	}
	return in
}

// attachScores fills the score columns in place. Rows must belong to one
// company; they are scored oldest to newest so each period sees its
// predecessor for growth.
func attachScores(analyzer *analysis.Analyzer, rows []models.DatasetRow) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PeriodEnd.Before(rows[j].PeriodEnd)
	})
	for i := range rows {
		var prior *models.DatasetRow
		if i > 0 {
			prior = &rows[i-1]
		}
		s := analyzer.Analyze(scoreInput(&rows[i], prior))

		rows[i].PiotroskiFScore = models.IntPtr(s.PiotroskiF)
		rows[i].AltmanZScore = models.FloatPtr(s.AltmanZ)
		if s.GrahamValue > 0 {
			rows[i].GrahamValue = models.FloatPtr(s.GrahamValue)
			if rows[i].Price != nil {
				rows[i].GrahamUpside = models.FloatPtr(s.GrahamUpside)
			}
		}
		if s.DCFValue > 0 {
			rows[i].DCFValue = models.FloatPtr(s.DCFValue)
		}
		if s.PEGRatio > 0 {
			rows[i].PEGRatio = models.FloatPtr(s.PEGRatio)
		}
		rows[i].MagicFormulaRank = models.IntPtr(s.MagicFormula)
		rows[i].MomentumScore = models.IntPtr(s.MomentumScore)
		rows[i].CompositeScore = models.IntPtr(s.Composite)
		rows[i].Grade = s.Grade
		rows[i].Recommendation = s.Recommendation
	}
}
