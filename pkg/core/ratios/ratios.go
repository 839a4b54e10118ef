// Package ratios derives standard valuation ratios from canonical statement
// fields. Every ratio is a *float64: nil means undefined (missing or zero
// denominator), which downstream screens must treat as "no signal" rather
// than zero.
package ratios

import (
	"math"

	"cse_research/pkg/models"
)

// Fields is a combined canonical field map for one company period, typically
// the union of the income statement, balance sheet and cash flow maps.
type Fields map[models.CanonicalField]float64

// Set holds the derived ratios for one FinancialPeriod. It is recomputed on
// demand and never persisted apart from its source period.
type Set struct {
	ROE              *float64 `json:"roe"`
	ROA              *float64 `json:"roa"`
	DebtToEquity     *float64 `json:"debt_to_equity"`
	GrossMargin      *float64 `json:"gross_margin"`
	OperatingMargin  *float64 `json:"operating_margin"`
	NetMargin        *float64 `json:"net_margin"`
	CurrentRatio     *float64 `json:"current_ratio"`
	QuickRatio       *float64 `json:"quick_ratio"`
	InterestCoverage *float64 `json:"interest_coverage"`
	AssetTurnover    *float64 `json:"asset_turnover"`
	FreeCashFlow     *float64 `json:"free_cash_flow"`
}

// Compute derives the full ratio set. Any ratio whose inputs are missing or
// whose denominator is zero comes back nil; Compute never panics and never
// returns Inf.
func Compute(f Fields) Set {
	var s Set

	netProfit, hasNP := f[models.FieldNetProfit]
	revenue, hasRev := f[models.FieldRevenue]
	equity, hasEq := f[models.FieldEquity]
	totalAssets, hasTA := f[models.FieldTotalAssets]

	if hasNP && hasEq {
		s.ROE = divide(netProfit, equity)
	}
	if hasNP && hasTA {
		s.ROA = divide(netProfit, totalAssets)
	}
	if tl, ok := f[models.FieldTotalLiabilities]; ok && hasEq {
		s.DebtToEquity = divide(tl, equity)
	}
	if gp, ok := f[models.FieldGrossProfit]; ok && hasRev {
		s.GrossMargin = divide(gp, revenue)
	}
	if op, ok := f[models.FieldOperatingProfit]; ok && hasRev {
		s.OperatingMargin = divide(op, revenue)
	}
	if hasNP && hasRev {
		s.NetMargin = divide(netProfit, revenue)
	}
	if ca, ok := f[models.FieldCurrentAssets]; ok {
		if cl, ok := f[models.FieldCurrentLiabilities]; ok {
			s.CurrentRatio = divide(ca, cl)
			if inv, ok := f[models.FieldInventories]; ok {
				s.QuickRatio = divide(ca-inv, cl)
			}
		}
	}
	if op, ok := f[models.FieldOperatingProfit]; ok {
		if fc, ok := f[models.FieldFinanceCosts]; ok {
			s.InterestCoverage = divide(op, math.Abs(fc))
		}
	}
	if hasRev && hasTA {
		s.AssetTurnover = divide(revenue, totalAssets)
	}
	if ocf, ok := f[models.FieldOperatingCashFlow]; ok {
		if capex, ok := f[models.FieldCapex]; ok {
			fcf := ocf - math.Abs(capex)
			s.FreeCashFlow = &fcf
		}
	}

	return s
}

// divide returns nil for a zero denominator instead of 0 or Inf:
// a stock with zero equity has an undefined ROE, not a bad one.
func divide(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}
